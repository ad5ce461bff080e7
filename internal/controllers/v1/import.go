package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dchoinie/church-membership-app-sub000/internal/auth"
	"github.com/dchoinie/church-membership-app-sub000/internal/httputil"
	"github.com/dchoinie/church-membership-app-sub000/internal/importer"
	"github.com/dchoinie/church-membership-app-sub000/internal/importer/parser/csvgiving"
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterImportRoutes registers the routes for imports.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsImport)
	r.POST("", auth.RequirePermission(auth.PermManageGiving), ImportGivingCSV)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/giving-import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// GivingImportResponse is the response of a CSV giving import.
type GivingImportResponse struct {
	Data  []Giving `json:"data"`
	Error *string  `json:"error" example:"error in line 3 of the CSV: could not parse date"`
}

// @Summary		Import giving CSV
// @Description	Imports a giving CSV file with the columns date, envelope, category, amount, note. The import is all or nothing: any unparseable or unattributable line rolls back the whole file.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	GivingImportResponse
// @Failure		400		{object}	GivingImportResponse
// @Failure		500		{object}	GivingImportResponse
// @Param			file	formData	file	true	"File to import"
// @Router			/v1/giving-import [post]
func ImportGivingCSV(c *gin.Context) {
	church, _, err := sessionChurch(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingImportResponse{Error: &s})
		return
	}

	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, GivingImportResponse{Error: &s})
		return
	}

	previews, err := csvgiving.Parse(f)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, GivingImportResponse{Error: &s})
		return
	}

	records, err := importer.Create(models.DB, church.ID, previews)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, GivingImportResponse{Error: &s})
		return
	}

	data := make([]Giving, 0, len(records))
	for _, record := range records {
		apiResource, err := newGiving(c, models.DB, record)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), GivingImportResponse{Error: &s})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusCreated, GivingImportResponse{Data: data})
}
