package app

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/melete/internal/catalog"
	"github.com/stolasapp/melete/internal/sec"
	"github.com/stolasapp/melete/internal/storage"
	"github.com/stolasapp/melete/internal/storage/db"
)

type handler struct {
	catalog *catalog.Catalog
}

func (h handler) register(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/", welcome)

	api := e.Group("/api")
	api.GET("/users", h.currentUser, auth)
	api.POST("/users", h.createUser)

	api.GET("/courses", h.listCourses)
	api.POST("/courses", h.createCourse, auth)
	api.GET("/courses/:id", h.getCourse)
	api.PUT("/courses/:id", h.updateCourse, auth)
	api.DELETE("/courses/:id", h.deleteCourse, auth)
}

// userJSON is the outbound user representation. There is deliberately no
// password or timestamp field.
type userJSON struct {
	ID           uint64 `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

type courseJSON struct {
	ID              uint64   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	EstimatedTime   string   `json:"estimatedTime"`
	MaterialsNeeded string   `json:"materialsNeeded"`
	UserID          uint64   `json:"userId"`
	Owner           userJSON `json:"owner"`
}

func toUserJSON(u db.UserSummary) userJSON {
	return userJSON(u)
}

func toCourseJSON(c db.CourseWithOwner) courseJSON {
	return courseJSON{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
		UserID:          c.UserID,
		Owner:           toUserJSON(c.Owner),
	}
}

func welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, messageBody{Message: "Welcome to the REST API project!"})
}

func (h handler) currentUser(c echo.Context) error {
	user := sec.CurrentUser(c.Request().Context())
	return c.JSON(http.StatusOK, toUserJSON(user.Summary()))
}

func (h handler) createUser(c echo.Context) error {
	var input catalog.NewUser
	if err := c.Bind(&input); err != nil {
		return err
	}
	if _, err := h.catalog.CreateUser(c.Request().Context(), input); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, "/")
	return c.NoContent(http.StatusCreated)
}

func (h handler) listCourses(c echo.Context) error {
	courses, err := h.catalog.ListCourses(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]courseJSON, len(courses))
	for i, course := range courses {
		out[i] = toCourseJSON(course)
	}
	return c.JSON(http.StatusOK, out)
}

func (h handler) getCourse(c echo.Context) error {
	id, err := courseID(c)
	if err != nil {
		return err
	}
	course, err := h.catalog.GetCourse(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourseJSON(course))
}

func (h handler) createCourse(c echo.Context) error {
	var input catalog.CourseInput
	if err := c.Bind(&input); err != nil {
		return err
	}
	owner := sec.CurrentUser(c.Request().Context())
	course, err := h.catalog.CreateCourse(c.Request().Context(), owner.ID, input)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/courses/%d", course.ID))
	return c.NoContent(http.StatusCreated)
}

func (h handler) updateCourse(c echo.Context) error {
	id, err := courseID(c)
	if err != nil {
		return err
	}
	var input catalog.CourseInput
	if err := c.Bind(&input); err != nil {
		return err
	}
	actor := sec.CurrentUser(c.Request().Context())
	if err := h.catalog.UpdateCourse(c.Request().Context(), actor.ID, id, input); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h handler) deleteCourse(c echo.Context) error {
	id, err := courseID(c)
	if err != nil {
		return err
	}
	actor := sec.CurrentUser(c.Request().Context())
	if err := h.catalog.DeleteCourse(c.Request().Context(), actor.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// courseID parses the :id route parameter. An unparseable id cannot name any
// course, so it reports the same not-found as an unknown id.
func courseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, storage.ErrNotFound
	}
	return id, nil
}
