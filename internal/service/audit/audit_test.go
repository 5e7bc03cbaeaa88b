package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	ai "github.com/Baru2006/EasyRecharge-MM/internal/pkg/ai-connector"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/events"
	"github.com/Baru2006/EasyRecharge-MM/internal/repository"
	orderRepo "github.com/Baru2006/EasyRecharge-MM/internal/repository/order"
	"github.com/google/generative-ai-go/genai"
)

type auditLedger struct {
	orderRepo.IRepository
	results map[string]orderRepo.AuditResult
}

func (l *auditLedger) UpdateAudit(_ context.Context, id string, r orderRepo.AuditResult) error {
	l.results[id] = r
	return nil
}

type slipBlob struct {
	data map[string][]byte
}

func (b *slipBlob) Put(context.Context, string, []byte, string) error { return nil }
func (b *slipBlob) URL(context.Context, string) (string, error) { return "", nil }
func (b *slipBlob) Get(_ context.Context, key string) ([]byte, string, error) {
	d, ok := b.data[key]
	if !ok {
		return nil, "", nil
	}
	return d, "image/jpeg", nil
}

type fakeReader struct {
	enabled  bool
	response string
	err      error
	calls    int
}

func (f *fakeReader) Enabled() bool { return f.enabled }

func (f *fakeReader) GeminiPromptWithImageAndSchema(_ context.Context, _ string, _ []byte, mimeType string, schema *genai.Schema) (*ai.PromptResult, error) {
	f.calls++
	if mimeType != "image/jpeg" || schema == nil {
		return nil, errors.New("unexpected request")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &ai.PromptResult{Response: f.response}, nil
}

func newAudit(reader *fakeReader) (IService, *auditLedger) {
	ledger := &auditLedger{results: map[string]orderRepo.AuditResult{}}
	blob := &slipBlob{data: map[string][]byte{"slips/BP-1.jpg": []byte("jpeg")}}
	return NewService(context.Background(), repository.IRepository{Order: ledger}, blob, reader, nil), ledger
}

func event() events.OrderSubmitted {
	return events.OrderSubmitted{OrderID: "BP-1", Total: 2400, TransactionID: "123456", SlipKey: "slips/BP-1.jpg"}
}

func TestAuditOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		reader  *fakeReader
		evt     func() events.OrderSubmitted
		status  enum.AuditStatus
		hasNote bool
	}{
		{"matched", &fakeReader{enabled: true, response: `{"readable":true,"amount":2400,"transactionId":"0100 3456 123456"}`}, event, enum.AUDIT_MATCHED, false},
		{"amount mismatch", &fakeReader{enabled: true, response: `{"readable":true,"amount":2000,"transactionId":"123456"}`}, event, enum.AUDIT_MISMATCH, true},
		{"unreadable", &fakeReader{enabled: true, response: `{"readable":false,"amount":0,"transactionId":""}`}, event, enum.AUDIT_UNREADABLE, true},
		{"garbage", &fakeReader{enabled: true, response: `not json`}, event, enum.AUDIT_UNREADABLE, true},
		{"disabled", &fakeReader{}, event, enum.AUDIT_SKIPPED, true},
		{"no slip", &fakeReader{enabled: true}, func() events.OrderSubmitted { e := event(); e.SlipKey = ""; return e }, enum.AUDIT_SKIPPED, true},
		{"slip gone", &fakeReader{enabled: true}, func() events.OrderSubmitted { e := event(); e.SlipKey = "slips/BP-9.jpg"; return e }, enum.AUDIT_SKIPPED, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, ledger := newAudit(tc.reader)
			if err := svc.HandleOrderSubmitted(context.Background(), tc.evt()); err != nil {
				t.Fatal(err)
			}
			got := ledger.results["BP-1"]
			if got.Status != tc.status || (got.Note != "") != tc.hasNote {
				t.Fatalf("result = %+v", got)
			}
		})
	}
}

func TestAuditReaderErrorIsRetried(t *testing.T) {
	reader := &fakeReader{enabled: true, err: errors.New("quota")}
	svc, ledger := newAudit(reader)

	if err := svc.HandleOrderSubmitted(context.Background(), event()); err == nil {
		t.Fatal("expected error so the message is retried")
	}
	if _, ok := ledger.results["BP-1"]; ok {
		t.Fatal("nothing should be recorded on a transient failure")
	}
}

func TestCompareTransactionID(t *testing.T) {
	evt := event()
	if r := Compare(evt, 2400, "ref 123456"); r.Status != enum.AUDIT_MATCHED {
		t.Fatalf("suffix = %+v", r)
	}
	if r := Compare(evt, 2400, ""); r.Status != enum.AUDIT_MISMATCH {
		t.Fatalf("missing id = %+v", r)
	}
	evt.TransactionID = ""
	if r := Compare(evt, 2400, "anything"); r.Status != enum.AUDIT_MATCHED {
		t.Fatalf("no expected id = %+v", r)
	}
}
