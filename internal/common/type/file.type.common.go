package types

import "mime/multipart"

type UploadFile struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// SlipFile is an uploaded proof-of-payment before preprocessing.
type SlipFile struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}
