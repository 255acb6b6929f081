package usersrepobridge

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jrazmi/backoffice/bridge/scaffolding/errs"
	"github.com/jrazmi/backoffice/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/backoffice/bridge/scaffolding/metrics"
	"github.com/jrazmi/backoffice/core/repositories"
	"github.com/jrazmi/backoffice/core/repositories/usersrepo"
	"github.com/jrazmi/backoffice/infrastructure/web"
	"github.com/jrazmi/backoffice/sdk/logger"
)

// bridge provides HTTP handlers for User operations.
type bridge struct {
	log            *logger.Logger
	userRepository *usersrepo.Repository
}

func newBridge(log *logger.Logger, userRepository *usersrepo.Repository) *bridge {
	return &bridge{
		log:            log,
		userRepository: userRepository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	params, err := fopbridge.ParseParams(r)
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "invalid request input: %s", err)
	}

	start := time.Now()
	result, err := b.userRepository.List(ctx, params)
	metrics.ObserveList(ctx, "users", time.Since(start), err)
	if err != nil {
		return errs.Classify(err)
	}

	return fopbridge.NewListResponse("Users retrieved successfully", result)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input usersrepo.CreateUser
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	user, err := b.userRepository.Create(ctx, input)
	if err != nil {
		return errs.Classify(err)
	}

	return fopbridge.NewItemResponse("User created successfully", user)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	id, perr := parseID(r)
	if perr != nil {
		return perr
	}

	user, err := b.userRepository.Get(ctx, id)
	if err != nil {
		return notFound(err)
	}

	return fopbridge.NewItemResponse("User retrieved successfully", user)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	id, perr := parseID(r)
	if perr != nil {
		return perr
	}

	var input usersrepo.UpdateUser
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	user, err := b.userRepository.Update(ctx, id, input)
	if err != nil {
		return notFound(err)
	}

	return fopbridge.NewItemResponse("User updated successfully", user)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, perr := parseID(r)
	if perr != nil {
		return perr
	}

	if err := b.userRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, usersrepo.ErrSuperAdmin) {
			return errs.Newf(errs.FailedPrecondition, "Cannot delete super admin")
		}
		return notFound(err)
	}

	return fopbridge.NewMessageResponse("User deleted successfully")
}

func notFound(err error) *errs.Error {
	if errors.Is(err, repositories.ErrNotFound) {
		return errs.Newf(errs.NotFound, "User not found")
	}
	return errs.Classify(err)
}
