package pricing

import (
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/pricing"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/validation"
)

func (s *Service) Catalog() *types.Response {
	table := s.calculator.Table()
	return helper.ParseResponse(&types.Response{
		Data: CatalogResponse{
			Categories: table.Catalog(),
			Providers:  table.Providers(),
			FeePolicy:  s.calculator.Policy(),
			Currency:   s.currency,
		},
	})
}

func (s *Service) Packages(provider string) *types.Response {
	packages := s.calculator.Table().Packages(provider)
	if len(packages) == 0 {
		return helper.ParseResponse(&types.Response{Error: apperror.NewNotFoundError("Provider " + provider)})
	}
	return helper.ParseResponse(&types.Response{Data: packages})
}

// Quote prices what the form currently shows. Unknown items quote 0 with
// Known false; the order endpoint rejects them.
func (s *Service) Quote(user types.UserWithAuth, req QuoteRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{Error: err})
	}

	q := s.calculator.Quote(pricing.QuoteInput{
		Category: req.Category,
		Key:      req.Key,
		Quantity: req.Quantity,
		Amount:   req.Amount,
		Role:     user.EffectiveRole(),
	})

	res := QuoteResponse{Quote: q, TotalDisplay: helper.FormatAmount(q.Total, s.currency)}
	if q.Split != nil {
		res.FeeDisplay = helper.FormatAmount(q.Split.Fee, s.currency)
		res.ReceiveDisplay = helper.FormatAmount(q.Split.Receive, s.currency)
	}
	return helper.ParseResponse(&types.Response{Data: res})
}
