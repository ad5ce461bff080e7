package v1

import (
	"net/http"
	"time"

	"github.com/dchoinie/church-membership-app-sub000/internal/auth"
	"github.com/dchoinie/church-membership-app-sub000/internal/httputil"
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterGivingRoutes registers the routes for giving records with
// the RouterGroup that is passed.
func RegisterGivingRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGivingList)
		r.GET("", auth.RequirePermission(auth.PermManageGiving), GetGivingRecords)
		r.POST("", auth.RequirePermission(auth.PermManageGiving), CreateGivingRecords)
	}

	// Giving record with ID
	{
		r.OPTIONS("/:id", OptionsGivingDetail)
		r.GET("/:id", auth.RequirePermission(auth.PermManageGiving), GetGivingRecord)
		r.PATCH("/:id", auth.RequirePermission(auth.PermManageGiving), UpdateGivingRecord)
		r.DELETE("/:id", auth.RequirePermission(auth.PermManageGiving), DeleteGivingRecord)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Giving
// @Success		204
// @Router			/v1/giving [options]
func OptionsGivingList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Giving
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/giving/{id} [options]
func OptionsGivingDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = getGivingRecord(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// getGivingRecord loads a giving record by URI ID, scoped to the session
// church.
func getGivingRecord(c *gin.Context, uri URIID) (models.GivingRecord, error) {
	church, _, err := sessionChurch(c)
	if err != nil {
		return models.GivingRecord{}, err
	}

	var record models.GivingRecord
	err = models.DB.
		Where(&models.GivingRecord{ChurchID: church.ID}).
		First(&record, uri.ID.UUID).Error
	if err != nil {
		return models.GivingRecord{}, err
	}

	return record, nil
}

// @Summary		Create giving records
// @Description	Creates new giving records with their items
// @Tags			Giving
// @Produce		json
// @Success		201		{object}	GivingCreateResponse
// @Failure		400		{object}	GivingCreateResponse
// @Failure		404		{object}	GivingCreateResponse
// @Failure		500		{object}	GivingCreateResponse
// @Param			giving	body		[]GivingEditable	true	"Giving records"
// @Router			/v1/giving [post]
func CreateGivingRecords(c *gin.Context) {
	var editables []GivingEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GivingCreateResponse{Error: &e})
		return
	}

	church, _, err := sessionChurch(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GivingCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := GivingCreateResponse{}

	for _, editable := range editables {
		if err := editable.validate(); err != nil {
			status = r.appendError(err, status)
			continue
		}

		// The member has to exist and belong to the same church
		err = models.DB.
			Where(&models.Member{ChurchID: church.ID}).
			First(&models.Member{}, editable.MemberID).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		record := editable.model(church.ID)
		err = models.DB.Create(&record).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newGiving(c, models.DB, record)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, GivingResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get giving records
// @Description	Returns a list of giving records
// @Tags			Giving
// @Produce		json
// @Success		200	{object}	GivingListResponse
// @Failure		400	{object}	GivingListResponse
// @Failure		500	{object}	GivingListResponse
// @Router			/v1/giving [get]
// @Param			member	query	string	false	"Filter by member ID"
// @Param			from	query	string	false	"Earliest date, format 2006-01-02"
// @Param			to		query	string	false	"Latest date, format 2006-01-02"
// @Param			note	query	string	false	"Filter by note"
// @Param			offset	query	uint	false	"The offset of the first record returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of records to return. Defaults to 50."
func GetGivingRecords(c *gin.Context) {
	var filter GivingQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	church, _, err := sessionChurch(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("date_given DESC").
		Order("created_at DESC").
		Where(&models.GivingRecord{ChurchID: church.ID}).
		Where(filter.model(), queryFields...)

	if filter.From != "" {
		from, err := time.Parse("2006-01-02", filter.From)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, GivingListResponse{Error: &s})
			return
		}
		q = q.Where("date_given >= ?", from)
	}

	if filter.To != "" {
		to, err := time.Parse("2006-01-02", filter.To)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, GivingListResponse{Error: &s})
			return
		}
		q = q.Where("date_given <= ?", to)
	}

	q = noteFilter(q, setFields, filter.Note)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 records and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var records []models.GivingRecord
	err = q.Find(&records).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingListResponse{Error: &s})
		return
	}

	data := make([]Giving, 0)
	for _, record := range records {
		apiResource, err := newGiving(c, models.DB, record)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), GivingListResponse{Error: &s})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, GivingListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get giving record
// @Description	Returns a specific giving record
// @Tags			Giving
// @Produce		json
// @Success		200	{object}	GivingResponse
// @Failure		400	{object}	GivingResponse
// @Failure		404	{object}	GivingResponse
// @Failure		500	{object}	GivingResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/giving/{id} [get]
func GetGivingRecord(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingResponse{Error: &s})
		return
	}

	record, err := getGivingRecord(c, uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingResponse{Error: &s})
		return
	}

	data, err := newGiving(c, models.DB, record)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, GivingResponse{Data: &data})
}

// @Summary		Update giving record
// @Description	Update the date and note of an existing giving record. Items cannot be changed, delete and recreate the record instead.
// @Tags			Giving
// @Accept			json
// @Produce		json
// @Success		200		{object}	GivingResponse
// @Failure		400		{object}	GivingResponse
// @Failure		404		{object}	GivingResponse
// @Failure		500		{object}	GivingResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			giving	body		GivingEditable	true	"Giving record"
// @Router			/v1/giving/{id} [patch]
func UpdateGivingRecord(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingResponse{Error: &s})
		return
	}

	record, err := getGivingRecord(c, uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GivingEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingResponse{Error: &s})
		return
	}

	// Items are immutable, only the record fields can be patched
	updateFields = slices.DeleteFunc(updateFields, func(field any) bool {
		return field == any("Items") || field == any("MemberID")
	})

	var data GivingEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingResponse{Error: &s})
		return
	}

	update := models.GivingRecord{
		DateGiven: data.DateGiven,
		Note:      data.Note,
	}

	err = models.DB.Model(&record).Select("", updateFields...).Updates(update).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingResponse{Error: &s})
		return
	}

	r, err := newGiving(c, models.DB, record)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GivingResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, GivingResponse{Data: &r})
}

// @Summary		Delete giving record
// @Description	Deletes a giving record and its items
// @Tags			Giving
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/giving/{id} [delete]
func DeleteGivingRecord(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	record, err := getGivingRecord(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.GivingItem{GivingRecordID: record.ID}).Delete(&models.GivingItem{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&record).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
