package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dchoinie/church-membership-app-sub000/internal/auth"
	"github.com/dchoinie/church-membership-app-sub000/internal/httputil"
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/dchoinie/church-membership-app-sub000/internal/statement"
	"github.com/dchoinie/church-membership-app-sub000/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterStatementRoutes registers the routes for giving statements with
// the RouterGroup that is passed.
func RegisterStatementRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsStatementList)
		r.GET("", auth.RequirePermission(auth.PermManageStatements), GetStatements)
	}

	r.POST("/generate", auth.RequirePermission(auth.PermManageStatements), GenerateStatements)

	// Statement with ID
	{
		r.OPTIONS("/:id", OptionsStatementDetail)
		r.GET("/:id", auth.RequirePermission(auth.PermManageStatements), GetStatement)
		r.GET("/:id/pdf", auth.RequirePermission(auth.PermManageStatements), GetStatementPDF)
		// PATCH instead of POST, a POST on an ":id" path would conflict with the static "/generate" route
		r.PATCH("/:id/send", auth.RequirePermission(auth.PermManageStatements), SendStatement)
		r.DELETE("/:id", auth.RequirePermission(auth.PermManageStatements), DeleteStatement)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Statements
// @Success		204
// @Router			/v1/giving-statements [options]
func OptionsStatementList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Statements
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/giving-statements/{id} [options]
func OptionsStatementDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = getStatement(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// getStatement loads a statement by URI ID, scoped to the session church.
func getStatement(c *gin.Context, uri URIID) (models.GivingStatement, error) {
	church, _, err := sessionChurch(c)
	if err != nil {
		return models.GivingStatement{}, err
	}

	var s models.GivingStatement
	err = models.DB.
		Where(&models.GivingStatement{ChurchID: church.ID}).
		First(&s, uri.ID.UUID).Error
	if err != nil {
		return models.GivingStatement{}, err
	}

	return s, nil
}

// @Summary		Generate giving statements
// @Description	Runs the year-end statement pipeline for one or all households. Set preview to render without persisting, a preview for a single household returns the PDF directly. When the church tax information is incomplete, the response asks for confirmation, repeat the request with skipValidation to generate anyway.
// @Tags			Statements
// @Accept			json
// @Produce		json
// @Success		200		{object}	statement.Summary
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			request	body		statement.Request	true	"Generation request"
// @Router			/v1/giving-statements/generate [post]
func GenerateStatements(c *gin.Context) {
	var request statement.Request
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	church, session, err := sessionChurch(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	result, err := statement.Generate(models.DB, church, session.User, statement.PolicyFromEnv(), request)
	if err != nil {
		s := status(err)

		switch {
		case errors.Is(err, statement.ErrNoGivingOnFile):
			s = http.StatusNotFound
		case errors.Is(err, types.ErrYearInvalid),
			errors.Is(err, models.ErrChurchTaxInfoIncomplete),
			errors.Is(err, models.ErrResourceNotFound),
			errors.Is(err, models.ErrGeneral):
			// Part of the request contract, status(err) is correct
		default:
			// Everything else is an unexpected top level failure
			s = http.StatusInternalServerError
		}

		e := httpError{Error: err.Error()}
		if s == http.StatusInternalServerError {
			e = httpError{Error: models.ErrGeneral.Error(), Details: err.Error()}
		}

		c.JSON(s, e)
		return
	}

	if result.Confirmation != nil {
		c.JSON(http.StatusOK, result.Confirmation)
		return
	}

	if result.PDF != nil {
		c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="statement-%s.pdf"`, request.Year))
		c.Data(http.StatusOK, "application/pdf", result.PDF)
		return
	}

	c.JSON(http.StatusOK, result.Summary)
}

// @Summary		Get giving statements
// @Description	Returns a list of persisted giving statements
// @Tags			Statements
// @Produce		json
// @Success		200	{object}	StatementListResponse
// @Failure		400	{object}	StatementListResponse
// @Failure		500	{object}	StatementListResponse
// @Router			/v1/giving-statements [get]
// @Param			year		query	int		false	"Filter by tax year"
// @Param			household	query	string	false	"Filter by household ID"
// @Param			offset		query	uint	false	"The offset of the first statement returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of statements to return. Defaults to 50."
func GetStatements(c *gin.Context) {
	var filter StatementQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	church, _, err := sessionChurch(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatementListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("year DESC").
		Order("statement_number ASC").
		Where(&models.GivingStatement{ChurchID: church.ID}).
		Where(filter.model(), queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 statements and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var statements []models.GivingStatement
	err = q.Find(&statements).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatementListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatementListResponse{Error: &s})
		return
	}

	data := make([]Statement, 0)
	for _, model := range statements {
		data = append(data, newStatement(c, model))
	}

	c.JSON(http.StatusOK, StatementListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get giving statement
// @Description	Returns a specific giving statement
// @Tags			Statements
// @Produce		json
// @Success		200	{object}	StatementResponse
// @Failure		400	{object}	StatementResponse
// @Failure		404	{object}	StatementResponse
// @Failure		500	{object}	StatementResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/giving-statements/{id} [get]
func GetStatement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatementResponse{Error: &s})
		return
	}

	model, err := getStatement(c, uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatementResponse{Error: &s})
		return
	}

	data := newStatement(c, model)
	c.JSON(http.StatusOK, StatementResponse{Data: &data})
}

// @Summary		Get giving statement PDF
// @Description	Returns the rendered PDF document of a giving statement
// @Tags			Statements
// @Produce		application/pdf
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/giving-statements/{id}/pdf [get]
func GetStatementPDF(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	model, err := getStatement(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s.pdf"`, model.StatementNumber))
	c.Data(http.StatusOK, "application/pdf", model.PDF)
}

// @Summary		Send giving statement
// @Description	Marks a giving statement as sent to the household. Regenerating the statement resets this.
// @Tags			Statements
// @Produce		json
// @Success		200	{object}	StatementResponse
// @Failure		400	{object}	StatementResponse
// @Failure		404	{object}	StatementResponse
// @Failure		500	{object}	StatementResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/giving-statements/{id}/send [patch]
func SendStatement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatementResponse{Error: &s})
		return
	}

	model, err := getStatement(c, uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatementResponse{Error: &s})
		return
	}

	if len(model.PDF) == 0 {
		s := errStatementNotSent.Error()
		c.JSON(http.StatusBadRequest, StatementResponse{Error: &s})
		return
	}

	_, session, err := sessionChurch(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatementResponse{Error: &s})
		return
	}

	err = model.MarkSent(models.DB, "sent", session.User.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatementResponse{Error: &s})
		return
	}

	// Reload to get the send tracking fields as persisted
	err = models.DB.First(&model, model.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatementResponse{Error: &s})
		return
	}

	data := newStatement(c, model)
	c.JSON(http.StatusOK, StatementResponse{Data: &data})
}

// @Summary		Delete giving statement
// @Description	Deletes a giving statement
// @Tags			Statements
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/giving-statements/{id} [delete]
func DeleteStatement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	model, err := getStatement(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&model).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
