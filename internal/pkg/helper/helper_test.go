package helper

import (
	"errors"
	"net/http"
	"testing"
	"time"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount   int64
		currency string
		want     string
	}{
		{0, "MMK", "0 MMK"},
		{2400, "MMK", "2,400 MMK"},
		{1234567, "MMK", "1,234,567 MMK"},
		{950, "", "950"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.amount, tc.currency); got != tc.want {
			t.Errorf("FormatAmount(%d, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]int64{
		"":        0,
		"10000":   10000,
		"10,000":  10000,
		" 250 ":   250,
		"99.9":    99,
		"-5":      0,
		"ten":     0,
		"1,000.5": 1000,
	}
	for in, want := range cases {
		if got := ParseAmount(in); got != want {
			t.Errorf("ParseAmount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestValueOrNA(t *testing.T) {
	if ValueOrNA("  ") != "N/A" || ValueOrNA("KPay") != "KPay" {
		t.Fatal("ValueOrNA")
	}
}

func TestFormatReceiptDate(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	if got := FormatReceiptDate(at); got != "3/5/2024, 2:07:09 PM" {
		t.Fatalf("got %q", got)
	}
}

func TestParseResponse(t *testing.T) {
	ok := ParseResponse(&types.Response{Data: 1})
	if ok.Code != http.StatusOK || ok.Message != "OK" {
		t.Fatalf("ok = %+v", ok)
	}

	created := ParseResponse(&types.Response{Code: http.StatusCreated})
	if created.Message != "Created" {
		t.Fatalf("created = %+v", created)
	}

	missing := ParseResponse(&types.Response{Error: apperror.NewMissingSlipError()})
	if missing.Code != http.StatusBadRequest || missing.Message != "Payment Slip is required." {
		t.Fatalf("missing slip = %+v", missing)
	}

	plain := ParseResponse(&types.Response{Error: errors.New("boom")})
	if plain.Code != http.StatusInternalServerError {
		t.Fatalf("plain = %+v", plain)
	}
}

func TestToFault(t *testing.T) {
	if ToFault(nil) != nil {
		t.Fatal("nil error gave a fault")
	}

	f := ToFault(apperror.NewValidationError("sim_phone"))
	if f.Kind != string(apperror.KindValidation) || f.Field != "sim_phone" || f.Message != "sim_phone is required" {
		t.Fatalf("fault = %+v", f)
	}

	if f := ToFault(errors.New("boom")); f.Kind != "" || f.Message != "boom" {
		t.Fatalf("plain fault = %+v", f)
	}
}

func TestDetectContentType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if got := DetectContentType("", png); got != "image/png" {
		t.Fatalf("sniffed = %q", got)
	}
	if got := DetectContentType("application/octet-stream", png); got != "image/png" {
		t.Fatalf("octet sniffed = %q", got)
	}
	if got := DetectContentType("Image/JPEG", png); got != "image/jpeg" {
		t.Fatalf("declared = %q", got)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("BP_TEST_SET", "  value ")
	t.Setenv("BP_TEST_BLANK", "   ")

	if got := EnvOr("BP_TEST_SET", "x"); got != "value" {
		t.Fatalf("set = %q", got)
	}
	if got := EnvOr("BP_TEST_BLANK", "x"); got != "x" {
		t.Fatalf("blank = %q", got)
	}
	if got := EnvOr("BP_TEST_MISSING_KEY", "x"); got != "x" {
		t.Fatalf("missing = %q", got)
	}
}
