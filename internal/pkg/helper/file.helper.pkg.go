package helper

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/gabriel-vasile/mimetype"
)

// PrepareSlipFile reads an uploaded file into memory. When maxBytes > 0 a
// file whose declared size exceeds it is returned unread so the caller can
// reject it without buffering.
func PrepareSlipFile(p types.UploadFile, maxBytes int64) (*types.SlipFile, error) {
	slip := &types.SlipFile{
		FileName:    p.Header.Filename,
		ContentType: p.Header.Header.Get("Content-Type"),
		Size:        p.Header.Size,
	}
	if maxBytes > 0 && slip.Size > maxBytes {
		return slip, nil
	}

	if seeker, ok := p.File.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to seek: %w", err)
		}
	}

	buf := bytes.NewBuffer(nil)
	if _, err := buf.ReadFrom(p.File); err != nil {
		return nil, fmt.Errorf("failed to read from file: %w", err)
	}
	slip.Data = buf.Bytes()
	slip.Size = int64(buf.Len())

	return slip, nil
}

// DetectContentType trusts a declared media type unless it is empty or
// the generic octet-stream, in which case the bytes are sniffed.
func DetectContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(strings.ToLower(declared))
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if len(data) == 0 {
		return declared
	}
	return mimetype.Detect(data).String()
}
