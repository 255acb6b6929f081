package mid

import (
	"context"
	"errors"
	"net/http"
	"path"

	"github.com/jrazmi/backoffice/bridge/scaffolding/errs"
	"github.com/jrazmi/backoffice/infrastructure/web"
	"github.com/jrazmi/backoffice/sdk/logger"
)

// Errors handles errors coming out of the call chain.
func Errors(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			appErr := errs.Classify(err)

			attrs := []any{
				"err", err,
				"code", appErr.Code.String(),
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName),
			}
			if cause := errors.Unwrap(appErr); cause != nil {
				attrs = append(attrs, "cause", cause)
			}
			log.ErrorContext(ctx, "handled error during request", attrs...)

			if appErr.Code == errs.InternalOnlyLog || appErr.Code == errs.Internal {
				appErr = errs.Newf(errs.Internal, "Internal Server Error")
			}

			return appErr
		}
	}
}
