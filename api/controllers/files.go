package controllers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/nearbuy-market/storefront-gateway/api/responses"
	"github.com/nearbuy-market/storefront-gateway/api/validators"
	"github.com/nearbuy-market/storefront-gateway/internal/session"
	"github.com/nearbuy-market/storefront-gateway/internal/upstream"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

// Product images stay small; anything bigger is rejected before the
// multipart parse buffers it.
const maxUploadBytes = 10 << 20

type filesBackend interface {
	UploadFile(ctx context.Context, token, filename string, content io.Reader) (*upstream.BinaryFile, error)
	GetFile(ctx context.Context, token string, id int64) (*upstream.BinaryFile, error)
}

// FileUpload forwards a multipart image upload to the backend.
func FileUpload(backend filesBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file upload unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file part is required"))
			return
		}
		defer file.Close()

		filename := strings.TrimSpace(r.FormValue("filename"))
		if filename == "" {
			filename = header.Filename
		}
		if filename == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "filename is required"))
			return
		}

		uploaded, err := backend.UploadFile(ctx, token, filename, file)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, uploaded)
	}
}

// FileFetch returns an uploaded asset's metadata.
func FileFetch(backend filesBackend, sessions session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if backend == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file service unavailable"))
			return
		}

		token, err := sessionToken(r, sessions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := validators.ParseIDParam(r, "fileId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		asset, err := backend.GetFile(ctx, token, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, asset)
	}
}
