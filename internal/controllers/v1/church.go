package v1

import (
	"net/http"

	"github.com/dchoinie/church-membership-app-sub000/internal/auth"
	"github.com/dchoinie/church-membership-app-sub000/internal/httputil"
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// RegisterChurchRoutes registers the routes for the church profile with
// the RouterGroup that is passed.
func RegisterChurchRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsChurch)
	r.GET("", GetChurch)
	r.PATCH("", auth.RequirePermission(auth.PermManageChurch), UpdateChurch)
}

// sessionChurch loads the church of the authenticated session.
func sessionChurch(c *gin.Context) (models.Church, auth.Session, error) {
	session, _ := auth.SessionFromContext(c)

	var church models.Church
	err := models.DB.First(&church, uuid.MustParse(session.ChurchID)).Error
	if err != nil {
		return models.Church{}, session, err
	}

	return church, session, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Church
// @Success		204
// @Router			/v1/church [options]
func OptionsChurch(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get church
// @Description	Returns the church profile of the authenticated session
// @Tags			Church
// @Produce		json
// @Success		200	{object}	ChurchResponse
// @Failure		500	{object}	ChurchResponse
// @Router			/v1/church [get]
func GetChurch(c *gin.Context) {
	church, _, err := sessionChurch(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChurchResponse{Error: &s})
		return
	}

	data, err := newChurch(church)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChurchResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ChurchResponse{Data: &data})
}

// @Summary		Update church
// @Description	Update the church profile. Only values to be updated need to be specified.
// @Tags			Church
// @Accept			json
// @Produce		json
// @Success		200		{object}	ChurchResponse
// @Failure		400		{object}	ChurchResponse
// @Failure		500		{object}	ChurchResponse
// @Param			church	body		ChurchEditable	true	"Church"
// @Router			/v1/church [patch]
func UpdateChurch(c *gin.Context) {
	church, _, err := sessionChurch(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChurchResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ChurchEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChurchResponse{Error: &s})
		return
	}

	var data ChurchEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChurchResponse{Error: &s})
		return
	}

	model, err := data.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChurchResponse{Error: &s})
		return
	}

	// The API field is TaxID, the encrypted model field is TaxIDEncrypted
	if i := slices.Index(updateFields, any("TaxID")); i >= 0 {
		updateFields[i] = any("TaxIDEncrypted")
	}

	err = models.DB.Model(&church).Select("", updateFields...).Updates(model).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChurchResponse{Error: &s})
		return
	}

	r, err := newChurch(church)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChurchResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ChurchResponse{Data: &r})
}
