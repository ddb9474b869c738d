package iam

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/simple-user-admin/pkg/errors"
	"github.com/tendant/simple-user-admin/pkg/login"
	"golang.org/x/exp/slog"
)

// Handle exposes the user management REST API
type Handle struct {
	iamService *IamService
	validate   *validator.Validate
}

func NewHandle(iamService *IamService) Handle {
	return Handle{
		iamService: iamService,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// UserRequest is the create/update payload. Password is optional on update;
// an empty password keeps the stored hash.
type UserRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=50"`
	Age      *int32   `json:"age" validate:"required,min=12,max=130"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"omitempty,min=6"`
	Roles    []string `json:"roles" validate:"required,min=1"`
}

// UserDto is the response shape. Password is always null in responses.
type UserDto struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Age      int32     `json:"age"`
	Email    string    `json:"email"`
	Password *string   `json:"password"`
	Roles    []string  `json:"roles"`
}

func (h Handle) RegisterRoutes(r chi.Router) {
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.FindUsers)
		r.Post("/", h.CreateUser)
		r.Route("/{userId}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Put("/", h.UpdateUser)
			r.Delete("/", h.DeleteUser)
		})
	})
	r.Get("/api/auth/user", h.GetCurrentUser)
}

func (h Handle) FindUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.iamService.FindUsers(r.Context())
	if err != nil {
		slog.Error("Failed to find users", "err", err)
		errors.RenderError(w, err)
		return
	}
	dtos := make([]UserDto, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, toDto(user))
	}
	render.JSON(w, r, dtos)
}

func (h Handle) GetUser(w http.ResponseWriter, r *http.Request) {
	userId, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		errors.RenderError(w, errors.InvalidInput("user id", "must be a UUID"))
		return
	}
	user, err := h.iamService.GetUser(r.Context(), userId)
	if err != nil {
		errors.RenderError(w, err)
		return
	}
	render.JSON(w, r, toDto(user))
}

func (h Handle) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		errors.RenderError(w, errors.InvalidInput("request body", "malformed JSON"))
		return
	}
	if fieldErrors := h.validateRequest(req); fieldErrors != nil {
		errors.RenderValidation(w, fieldErrors)
		return
	}

	var params CreateUserParams
	copier.Copy(&params, req)
	params.Age = *req.Age

	user, err := h.iamService.CreateUser(r.Context(), params)
	if err != nil {
		slog.Error("Failed to create user", "email", req.Email, "err", err)
		errors.RenderError(w, err)
		return
	}
	render.JSON(w, r, toDto(user))
}

func (h Handle) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userId, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		errors.RenderError(w, errors.InvalidInput("user id", "must be a UUID"))
		return
	}
	var req UserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		errors.RenderError(w, errors.InvalidInput("request body", "malformed JSON"))
		return
	}
	if fieldErrors := h.validateRequest(req); fieldErrors != nil {
		errors.RenderValidation(w, fieldErrors)
		return
	}

	var params UpdateUserParams
	copier.Copy(&params, req)
	params.Age = *req.Age

	user, err := h.iamService.UpdateUser(r.Context(), userId, params)
	if err != nil {
		slog.Error("Failed to update user", "userId", userId, "err", err)
		errors.RenderError(w, err)
		return
	}
	render.JSON(w, r, toDto(user))
}

func (h Handle) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userId, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		errors.RenderError(w, errors.InvalidInput("user id", "must be a UUID"))
		return
	}
	if err := h.iamService.DeleteUser(r.Context(), userId); err != nil {
		slog.Error("Failed to delete user", "userId", userId, "err", err)
		errors.RenderError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetCurrentUser returns the session principal's account as a full DTO,
// for the page headers and the user page.
func (h Handle) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := r.Context().Value(login.AuthUserKey).(*login.AuthUser)
	if !ok {
		errors.RenderError(w, errors.Unauthorized("not authenticated"))
		return
	}
	user, err := h.iamService.GetUser(r.Context(), authUser.UserUuid)
	if err != nil {
		errors.RenderError(w, err)
		return
	}
	render.JSON(w, r, toDto(user))
}

func (h Handle) validateRequest(req UserRequest) map[string]string {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": "Invalid request"}
	}
	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors[fieldName(fe)] = fieldMessage(fe)
	}
	return fieldErrors
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "name"
	case "Age":
		return "age"
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "Roles":
		return "roles"
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return "Name is required"
		}
		return "Name must be 2-50 characters"
	case "Age":
		switch fe.Tag() {
		case "required":
			return "Age is required"
		case "min":
			return "Age must be at least 12"
		case "max":
			return "Age must be at most 130"
		}
	case "Email":
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Invalid email format"
	case "Password":
		return "Password must be at least 6 characters"
	case "Roles":
		return "At least one role must be selected"
	}
	return "Invalid value"
}

func toDto(user UserWithRoles) UserDto {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserDto{
		ID:       user.ID,
		Name:     user.Name,
		Age:      user.Age,
		Email:    user.Email,
		Password: nil,
		Roles:    roles,
	}
}
