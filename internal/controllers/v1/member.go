package v1

import (
	"fmt"
	"net/http"

	"github.com/dchoinie/church-membership-app-sub000/internal/auth"
	"github.com/dchoinie/church-membership-app-sub000/internal/httputil"
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterMemberRoutes registers the routes for members with
// the RouterGroup that is passed.
func RegisterMemberRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMemberList)
		r.GET("", GetMembers)
		r.POST("", auth.RequirePermission(auth.PermManageMembers), CreateMembers)
	}

	// Member with ID
	{
		r.OPTIONS("/:id", OptionsMemberDetail)
		r.GET("/:id", GetMember)
		r.PATCH("/:id", auth.RequirePermission(auth.PermManageMembers), UpdateMember)
		r.DELETE("/:id", auth.RequirePermission(auth.PermManageMembers), DeleteMember)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Members
// @Success		204
// @Router			/v1/members [options]
func OptionsMemberList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Members
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/members/{id} [options]
func OptionsMemberDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = getMember(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// getMember loads a member by URI ID, scoped to the session church.
func getMember(c *gin.Context, uri URIID) (models.Member, error) {
	church, _, err := sessionChurch(c)
	if err != nil {
		return models.Member{}, err
	}

	var member models.Member
	err = models.DB.
		Where(&models.Member{ChurchID: church.ID}).
		First(&member, uri.ID.UUID).Error
	if err != nil {
		return models.Member{}, err
	}

	return member, nil
}

// @Summary		Create members
// @Description	Creates new members
// @Tags			Members
// @Produce		json
// @Success		201		{object}	MemberCreateResponse
// @Failure		400		{object}	MemberCreateResponse
// @Failure		404		{object}	MemberCreateResponse
// @Failure		500		{object}	MemberCreateResponse
// @Param			members	body		[]MemberEditable	true	"Members"
// @Router			/v1/members [post]
func CreateMembers(c *gin.Context) {
	var editables []MemberEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberCreateResponse{Error: &e})
		return
	}

	church, _, err := sessionChurch(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MemberCreateResponse{}

	for _, editable := range editables {
		member := editable.model(church.ID)

		// The household has to exist and belong to the same church
		err = models.DB.
			Where(&models.Household{ChurchID: church.ID}).
			First(&models.Household{}, editable.HouseholdID).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = models.DB.Create(&member).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newMember(c, member)
		r.Data = append(r.Data, MemberResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get members
// @Description	Returns a list of members
// @Tags			Members
// @Produce		json
// @Success		200	{object}	MemberListResponse
// @Failure		400	{object}	MemberListResponse
// @Failure		500	{object}	MemberListResponse
// @Router			/v1/members [get]
// @Param			household	query	string	false	"Filter by household ID"
// @Param			status		query	string	false	"Filter by membership status"
// @Param			envelope	query	int		false	"Filter by envelope number"
// @Param			search		query	string	false	"Search for this text in first and last name"
// @Param			offset		query	uint	false	"The offset of the first member returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of members to return. Defaults to 50."
func GetMembers(c *gin.Context) {
	var filter MemberQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	church, _, err := sessionChurch(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("last_name ASC").
		Order("first_name ASC").
		Where(&models.Member{ChurchID: church.ID}).
		Where(filter.model(), queryFields...)

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		q = q.Where(
			models.DB.Where("first_name LIKE ?", like).Or(
				models.DB.Where("last_name LIKE ?", like),
			),
		)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 members and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var members []models.Member
	err = q.Find(&members).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberListResponse{Error: &s})
		return
	}

	data := make([]Member, 0)
	for _, member := range members {
		data = append(data, newMember(c, member))
	}

	c.JSON(http.StatusOK, MemberListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get member
// @Description	Returns a specific member
// @Tags			Members
// @Produce		json
// @Success		200	{object}	MemberResponse
// @Failure		400	{object}	MemberResponse
// @Failure		404	{object}	MemberResponse
// @Failure		500	{object}	MemberResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/members/{id} [get]
func GetMember(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{Error: &s})
		return
	}

	member, err := getMember(c, uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{Error: &s})
		return
	}

	data := newMember(c, member)
	c.JSON(http.StatusOK, MemberResponse{Data: &data})
}

// @Summary		Update member
// @Description	Update an existing member. Only values to be updated need to be specified.
// @Tags			Members
// @Accept			json
// @Produce		json
// @Success		200		{object}	MemberResponse
// @Failure		400		{object}	MemberResponse
// @Failure		404		{object}	MemberResponse
// @Failure		500		{object}	MemberResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			member	body		MemberEditable	true	"Member"
// @Router			/v1/members/{id} [patch]
func UpdateMember(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{Error: &s})
		return
	}

	member, err := getMember(c, uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MemberEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{Error: &s})
		return
	}

	var data MemberEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{Error: &s})
		return
	}

	err = models.DB.Model(&member).Select("", updateFields...).Updates(data.model(member.ChurchID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{Error: &s})
		return
	}

	r := newMember(c, member)
	c.JSON(http.StatusOK, MemberResponse{Data: &r})
}

// @Summary		Delete member
// @Description	Deletes a member
// @Tags			Members
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/members/{id} [delete]
func DeleteMember(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	member, err := getMember(c, uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&member).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
