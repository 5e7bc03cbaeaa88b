package helper

import (
	"time"
)

// ReceiptDateLayout renders like en-US locale strings: 1/2/2006, 3:04:05 PM.
const ReceiptDateLayout = "1/2/2006, 3:04:05 PM"

func FormatReceiptDate(t time.Time) string {
	return t.Format(ReceiptDateLayout)
}

func ToUnixMilli(date time.Time) int64 {
	return date.UnixMilli()
}
