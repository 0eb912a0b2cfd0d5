package httputil

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// CreateForm builds a multipart form holding a single file under the
// "files" field, with FileHeader.Size populated.
func CreateForm(content []byte, fileName string) (*multipart.Form, error) {
	return CreateMultipleFilesForm([][]byte{content}, []string{fileName})
}

// CreateMultipleFilesForm builds a multipart form holding several files
// under the "files" field, preserving the given order.
func CreateMultipleFilesForm(contents [][]byte, fileNames []string) (*multipart.Form, error) {
	if len(contents) != len(fileNames) {
		return nil, fmt.Errorf("contents and fileNames length mismatch: %d vs %d", len(contents), len(fileNames))
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for i, content := range contents {
		part, err := writer.CreateFormFile("files", fileNames[i])
		if err != nil {
			return nil, fmt.Errorf("failed to create form file '%s': %w", fileNames[i], err)
		}
		if _, err := part.Write(content); err != nil {
			return nil, fmt.Errorf("failed to write form file '%s': %w", fileNames[i], err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form writer: %w", err)
	}

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	if err != nil {
		return nil, fmt.Errorf("failed to read form back: %w", err)
	}

	// ReadForm does not set FileHeader.Size for in-memory files
	if fileHeaders, ok := form.File["files"]; ok {
		for i, fh := range fileHeaders {
			if i < len(contents) {
				fh.Size = int64(len(contents[i]))
			}
		}
	}

	return form, nil
}
