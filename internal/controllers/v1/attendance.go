package v1

import (
	"net/http"

	"github.com/dchoinie/church-membership-app-sub000/internal/auth"
	"github.com/dchoinie/church-membership-app-sub000/internal/httputil"
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterAttendanceRoutes registers the routes for attendance records with
// the RouterGroup that is passed.
func RegisterAttendanceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAttendanceList)
		r.GET("", GetAttendanceRecords)
		r.POST("", auth.RequirePermission(auth.PermManageAttendance), CreateAttendanceRecords)
	}

	// Attendance record with ID
	{
		r.OPTIONS("/:id", OptionsAttendanceDetail)
		r.GET("/:id", GetAttendanceRecord)
		r.PATCH("/:id", auth.RequirePermission(auth.PermManageAttendance), UpdateAttendanceRecord)
		r.DELETE("/:id", auth.RequirePermission(auth.PermManageAttendance), DeleteAttendanceRecord)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Attendance
// @Success		204
// @Router			/v1/attendance [options]
func OptionsAttendanceList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Attendance
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/attendance/{id} [options]
func OptionsAttendanceDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = getAttendanceRecord(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// getAttendanceRecord loads an attendance record by URI ID, scoped to the
// session church.
func getAttendanceRecord(c *gin.Context, uri URIID) (models.AttendanceRecord, error) {
	church, _, err := sessionChurch(c)
	if err != nil {
		return models.AttendanceRecord{}, err
	}

	var record models.AttendanceRecord
	err = models.DB.
		Where(&models.AttendanceRecord{ChurchID: church.ID}).
		First(&record, uri.ID.UUID).Error
	if err != nil {
		return models.AttendanceRecord{}, err
	}

	return record, nil
}

// @Summary		Create attendance records
// @Description	Creates new attendance records. There can be at most one record per member and service.
// @Tags			Attendance
// @Produce		json
// @Success		201			{object}	AttendanceCreateResponse
// @Failure		400			{object}	AttendanceCreateResponse
// @Failure		404			{object}	AttendanceCreateResponse
// @Failure		500			{object}	AttendanceCreateResponse
// @Param			attendance	body		[]AttendanceEditable	true	"Attendance records"
// @Router			/v1/attendance [post]
func CreateAttendanceRecords(c *gin.Context) {
	var editables []AttendanceEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendanceCreateResponse{Error: &e})
		return
	}

	church, _, err := sessionChurch(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendanceCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AttendanceCreateResponse{}

	for _, editable := range editables {
		// Service and member have to exist and belong to the same church
		err = models.DB.
			Where(&models.Service{ChurchID: church.ID}).
			First(&models.Service{}, editable.ServiceID).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

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

		data := newAttendance(c, record)
		r.Data = append(r.Data, AttendanceResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get attendance records
// @Description	Returns a list of attendance records
// @Tags			Attendance
// @Produce		json
// @Success		200	{object}	AttendanceListResponse
// @Failure		400	{object}	AttendanceListResponse
// @Failure		500	{object}	AttendanceListResponse
// @Router			/v1/attendance [get]
// @Param			service	query	string	false	"Filter by service ID"
// @Param			member	query	string	false	"Filter by member ID"
// @Param			offset	query	uint	false	"The offset of the first record returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of records to return. Defaults to 50."
func GetAttendanceRecords(c *gin.Context) {
	var filter AttendanceQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	church, _, err := sessionChurch(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AttendanceListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("created_at ASC").
		Where(&models.AttendanceRecord{ChurchID: church.ID}).
		Where(filter.model(), queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 records and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var records []models.AttendanceRecord
	err = q.Find(&records).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AttendanceListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AttendanceListResponse{Error: &s})
		return
	}

	data := make([]Attendance, 0)
	for _, record := range records {
		data = append(data, newAttendance(c, record))
	}

	c.JSON(http.StatusOK, AttendanceListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get attendance record
// @Description	Returns a specific attendance record
// @Tags			Attendance
// @Produce		json
// @Success		200	{object}	AttendanceResponse
// @Failure		400	{object}	AttendanceResponse
// @Failure		404	{object}	AttendanceResponse
// @Failure		500	{object}	AttendanceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/attendance/{id} [get]
func GetAttendanceRecord(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AttendanceResponse{Error: &s})
		return
	}

	record, err := getAttendanceRecord(c, uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AttendanceResponse{Error: &s})
		return
	}

	data := newAttendance(c, record)
	c.JSON(http.StatusOK, AttendanceResponse{Data: &data})
}

// @Summary		Update attendance record
// @Description	Update the attended and communion flags of an existing attendance record. The member and service cannot be changed.
// @Tags			Attendance
// @Accept			json
// @Produce		json
// @Success		200			{object}	AttendanceResponse
// @Failure		400			{object}	AttendanceResponse
// @Failure		404			{object}	AttendanceResponse
// @Failure		500			{object}	AttendanceResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			attendance	body		AttendanceEditable	true	"Attendance record"
// @Router			/v1/attendance/{id} [patch]
func UpdateAttendanceRecord(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AttendanceResponse{Error: &s})
		return
	}

	record, err := getAttendanceRecord(c, uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AttendanceResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AttendanceEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AttendanceResponse{Error: &s})
		return
	}

	// The member and service a record belongs to are immutable
	updateFields = slices.DeleteFunc(updateFields, func(field any) bool {
		return field == any("ServiceID") || field == any("MemberID")
	})

	var data AttendanceEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AttendanceResponse{Error: &s})
		return
	}

	update := models.AttendanceRecord{
		Attended:      data.Attended,
		TookCommunion: data.TookCommunion,
	}

	err = models.DB.Model(&record).Select("", updateFields...).Updates(update).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AttendanceResponse{Error: &s})
		return
	}

	r := newAttendance(c, record)
	c.JSON(http.StatusOK, AttendanceResponse{Data: &r})
}

// @Summary		Delete attendance record
// @Description	Deletes an attendance record
// @Tags			Attendance
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/attendance/{id} [delete]
func DeleteAttendanceRecord(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	record, err := getAttendanceRecord(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&record).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
