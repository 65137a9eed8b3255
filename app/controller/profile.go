package controller

import (
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-skillbase/app/dto/http"
	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
	"github.com/vibast-solutions/ms-go-skillbase/app/middleware"
	"github.com/vibast-solutions/ms-go-skillbase/app/service"
	"github.com/vibast-solutions/ms-go-skillbase/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ProfileController serves one profile kind; the router mounts one per kind.
type ProfileController struct {
	profiles service.ProfileService
	kind     entity.ProfileKind
}

func NewProfileController(profiles service.ProfileService, kind entity.ProfileKind) *ProfileController {
	return &ProfileController{profiles: profiles, kind: kind}
}

func (c *ProfileController) List(ctx echo.Context) error {
	list, err := c.profiles.List(ctx.Request().Context(), c.kind)
	if err != nil {
		return failure(ctx, "Profile listing failed", err, logrus.Fields{"kind": c.kind.String()})
	}
	return success(ctx, "Successfully got all "+c.kind.String()+"s", httpdto.NewProfileListResponse(list))
}

func (c *ProfileController) Update(ctx echo.Context) error {
	message := "Failed to update " + c.kind.String()

	req, err := types.NewUpdateProfileRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	id := ctx.Param("id")
	profile, err := c.profiles.Update(ctx.Request().Context(), middleware.ClaimsFromContext(ctx), c.kind, id, req)
	if err != nil {
		return failure(ctx, "Profile update failed", err, logrus.Fields{"profile_id": id, "kind": c.kind.String()})
	}

	logrus.WithFields(logrus.Fields{"profile_id": id, "kind": c.kind.String()}).Info("Profile updated")
	return success(ctx, "Successfully updated "+c.kind.String(), httpdto.NewProfileView(profile))
}

func (c *ProfileController) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.profiles.Delete(ctx.Request().Context(), middleware.ClaimsFromContext(ctx), c.kind, id); err != nil {
		return failure(ctx, "Profile deletion failed", err, logrus.Fields{"profile_id": id, "kind": c.kind.String()})
	}
	return ctx.JSON(http.StatusOK, httpdto.Success("Successfully deleted "+c.kind.String(), nil))
}
