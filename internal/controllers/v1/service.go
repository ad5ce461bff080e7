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

// RegisterServiceRoutes registers the routes for services with
// the RouterGroup that is passed.
func RegisterServiceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsServiceList)
		r.GET("", GetServices)
		r.POST("", auth.RequirePermission(auth.PermManageAttendance), CreateServices)
	}

	// Service with ID
	{
		r.OPTIONS("/:id", OptionsServiceDetail)
		r.GET("/:id", GetService)
		r.PATCH("/:id", auth.RequirePermission(auth.PermManageAttendance), UpdateService)
		r.DELETE("/:id", auth.RequirePermission(auth.PermManageAttendance), DeleteService)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Attendance
// @Success		204
// @Router			/v1/services [options]
func OptionsServiceList(c *gin.Context) {
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
// @Router			/v1/services/{id} [options]
func OptionsServiceDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = getService(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// getService loads a service by URI ID, scoped to the session church.
func getService(c *gin.Context, uri URIID) (models.Service, error) {
	church, _, err := sessionChurch(c)
	if err != nil {
		return models.Service{}, err
	}

	var service models.Service
	err = models.DB.
		Where(&models.Service{ChurchID: church.ID}).
		First(&service, uri.ID.UUID).Error
	if err != nil {
		return models.Service{}, err
	}

	return service, nil
}

// @Summary		Create services
// @Description	Creates new services
// @Tags			Attendance
// @Produce		json
// @Success		201			{object}	ServiceCreateResponse
// @Failure		400			{object}	ServiceCreateResponse
// @Failure		500			{object}	ServiceCreateResponse
// @Param			services	body		[]ServiceEditable	true	"Services"
// @Router			/v1/services [post]
func CreateServices(c *gin.Context) {
	var editables []ServiceEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ServiceCreateResponse{Error: &e})
		return
	}

	church, _, err := sessionChurch(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ServiceCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ServiceCreateResponse{}

	for _, editable := range editables {
		service := editable.model(church.ID)

		err = models.DB.Create(&service).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newService(c, models.DB, service)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, ServiceResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get services
// @Description	Returns a list of services
// @Tags			Attendance
// @Produce		json
// @Success		200	{object}	ServiceListResponse
// @Failure		400	{object}	ServiceListResponse
// @Failure		500	{object}	ServiceListResponse
// @Router			/v1/services [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			from	query	string	false	"Earliest date, format 2006-01-02"
// @Param			to		query	string	false	"Latest date, format 2006-01-02"
// @Param			offset	query	uint	false	"The offset of the first service returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of services to return. Defaults to 50."
func GetServices(c *gin.Context) {
	var filter ServiceQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	church, _, err := sessionChurch(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("date DESC").
		Order("name ASC").
		Where(&models.Service{ChurchID: church.ID})

	q = nameFilter(q, setFields, filter.Name)

	if filter.From != "" {
		from, err := time.Parse("2006-01-02", filter.From)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, ServiceListResponse{Error: &s})
			return
		}
		q = q.Where("date >= ?", from)
	}

	if filter.To != "" {
		to, err := time.Parse("2006-01-02", filter.To)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, ServiceListResponse{Error: &s})
			return
		}
		q = q.Where("date <= ?", to)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 services and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var services []models.Service
	err = q.Find(&services).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceListResponse{Error: &s})
		return
	}

	data := make([]Service, 0)
	for _, service := range services {
		apiResource, err := newService(c, models.DB, service)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ServiceListResponse{Error: &s})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, ServiceListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get service
// @Description	Returns a specific service
// @Tags			Attendance
// @Produce		json
// @Success		200	{object}	ServiceResponse
// @Failure		400	{object}	ServiceResponse
// @Failure		404	{object}	ServiceResponse
// @Failure		500	{object}	ServiceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/services/{id} [get]
func GetService(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceResponse{Error: &s})
		return
	}

	service, err := getService(c, uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceResponse{Error: &s})
		return
	}

	data, err := newService(c, models.DB, service)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ServiceResponse{Data: &data})
}

// @Summary		Update service
// @Description	Update an existing service. Only values to be updated need to be specified.
// @Tags			Attendance
// @Accept			json
// @Produce		json
// @Success		200		{object}	ServiceResponse
// @Failure		400		{object}	ServiceResponse
// @Failure		404		{object}	ServiceResponse
// @Failure		500		{object}	ServiceResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			service	body		ServiceEditable	true	"Service"
// @Router			/v1/services/{id} [patch]
func UpdateService(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceResponse{Error: &s})
		return
	}

	service, err := getService(c, uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ServiceEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceResponse{Error: &s})
		return
	}

	var data ServiceEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceResponse{Error: &s})
		return
	}

	err = models.DB.Model(&service).Select("", updateFields...).Updates(data.model(service.ChurchID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceResponse{Error: &s})
		return
	}

	r, err := newService(c, models.DB, service)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ServiceResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ServiceResponse{Data: &r})
}

// @Summary		Delete service
// @Description	Deletes a service and its attendance records
// @Tags			Attendance
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/services/{id} [delete]
func DeleteService(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	service, err := getService(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.AttendanceRecord{ServiceID: service.ID}).Delete(&models.AttendanceRecord{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&service).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
