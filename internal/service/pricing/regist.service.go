package pricing

import (
	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/pricing"
)

type Service struct {
	calculator *pricing.Calculator
	currency   string
}

type IService interface {
	Catalog() *types.Response
	Packages(provider string) *types.Response
	Quote(user types.UserWithAuth, req QuoteRequest) *types.Response
}

func NewService(calculator *pricing.Calculator, currency string) IService {
	if currency == "" {
		currency = "MMK"
	}
	return &Service{calculator: calculator, currency: currency}
}

type QuoteRequest struct {
	Category enum.Category `json:"category" validate:"required,enum"`
	Key      string        `json:"key"`
	Quantity string        `json:"quantity"`
	Amount   int64         `json:"amount" validate:"gte=0"`
}

type QuoteResponse struct {
	pricing.Quote
	TotalDisplay   string `json:"total_display"`
	FeeDisplay     string `json:"fee_display,omitempty"`
	ReceiveDisplay string `json:"receive_display,omitempty"`
}

type CatalogResponse struct {
	Categories map[enum.Category][]pricing.PriceEntry `json:"categories"`
	Providers  []string                               `json:"providers"`
	FeePolicy  enum.FeePolicy                         `json:"fee_policy"`
	Currency   string                                 `json:"currency"`
}
