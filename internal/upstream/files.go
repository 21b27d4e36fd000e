package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
)

// UploadFile streams a binary asset to the backend as multipart form data.
func (c *Client) UploadFile(ctx context.Context, token, filename string, content io.Reader) (*BinaryFile, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename is required")
	}
	if content == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file content is required")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build multipart body")
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "copy file content")
	}
	if err := writer.WriteField("filename", filename); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write filename field")
	}
	if err := writer.Close(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalize multipart body")
	}

	endpoint := c.buildURL("/api/binary-files/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	setAuthHeader(req, token)

	var file BinaryFile
	if err := c.execute(req, http.MethodPost, "/api/binary-files/", &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// GetFile returns metadata for one uploaded asset.
func (c *Client) GetFile(ctx context.Context, token string, id int64) (*BinaryFile, error) {
	var file BinaryFile
	path := fmt.Sprintf("/api/binary-files/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, token, nil, nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}
