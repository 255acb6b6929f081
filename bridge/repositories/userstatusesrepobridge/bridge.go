package userstatusesrepobridge

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jrazmi/backoffice/bridge/scaffolding/errs"
	"github.com/jrazmi/backoffice/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/backoffice/bridge/scaffolding/metrics"
	"github.com/jrazmi/backoffice/core/repositories"
	"github.com/jrazmi/backoffice/core/repositories/userstatusesrepo"
	"github.com/jrazmi/backoffice/infrastructure/web"
	"github.com/jrazmi/backoffice/sdk/logger"
)

type bridge struct {
	log                  *logger.Logger
	userStatusRepository *userstatusesrepo.Repository
}

func newBridge(log *logger.Logger, userStatusRepository *userstatusesrepo.Repository) *bridge {
	return &bridge{
		log:                  log,
		userStatusRepository: userStatusRepository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	params, err := fopbridge.ParseParams(r)
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid request input: %s", err)
	}

	start := time.Now()
	result, err := b.userStatusRepository.List(ctx, params)
	metrics.ObserveList(ctx, "user_statuses", time.Since(start), err)
	if err != nil {
		return errs.Classify(err)
	}

	return fopbridge.NewListResponse("User statuses retrieved successfully", result)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input userstatusesrepo.CreateUserStatus
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	status, err := b.userStatusRepository.Create(ctx, input)
	if err != nil {
		return errs.Classify(err)
	}

	return fopbridge.NewItemResponse("User status created successfully", status)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	id, perr := parseID(r)
	if perr != nil {
		return perr
	}

	status, err := b.userStatusRepository.Get(ctx, id)
	if err != nil {
		return notFound(err)
	}

	return fopbridge.NewItemResponse("User status retrieved successfully", status)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	id, perr := parseID(r)
	if perr != nil {
		return perr
	}

	var input userstatusesrepo.UpdateUserStatus
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	status, err := b.userStatusRepository.Update(ctx, id, input)
	if err != nil {
		return notFound(err)
	}

	return fopbridge.NewItemResponse("User status updated successfully", status)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, perr := parseID(r)
	if perr != nil {
		return perr
	}

	if err := b.userStatusRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return errs.Newf(errs.FailedPrecondition, "User status is still assigned to users")
		}
		return notFound(err)
	}

	return fopbridge.NewMessageResponse("User status deleted successfully")
}

func notFound(err error) *errs.Error {
	if errors.Is(err, repositories.ErrNotFound) {
		return errs.Newf(errs.NotFound, "User status not found")
	}
	return errs.Classify(err)
}

// parseID reads the {id} path value.
func parseID(r *http.Request) (int, *errs.Error) {
	raw := web.Param(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errs.Newf(errs.InvalidArgument, "invalid id %q", raw)
	}
	return id, nil
}
