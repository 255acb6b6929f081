package usersrepobridge

import (
	"net/http"
	"strconv"

	"github.com/jrazmi/backoffice/bridge/scaffolding/errs"
	"github.com/jrazmi/backoffice/infrastructure/web"
)

// parseID reads the {id} path value.
func parseID(r *http.Request) (int, *errs.Error) {
	raw := web.Param(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errs.Newf(errs.InvalidArgument, "invalid id %q", raw)
	}
	return id, nil
}
