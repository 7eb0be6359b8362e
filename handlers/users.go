package handlers

import (
	"errors"
	"net/http"

	"field-service-api/auth"
	"field-service-api/models"
	"field-service-api/repository"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	Email        string      `json:"email" binding:"required,email"`
	Name         string      `json:"name" binding:"required"`
	Password     string      `json:"password" binding:"required,min=6"`
	Role         models.Role `json:"role"`
	AssignedCity *string     `json:"assigned_city"`
}

type UpdateUserRequest struct {
	Email        *string      `json:"email" binding:"omitempty,email"`
	Name         *string      `json:"name"`
	Password     *string      `json:"password"`
	Role         *models.Role `json:"role"`
	AssignedCity *string      `json:"assigned_city"`
}

// ListUsers returns all users, newest first.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser registers a new user. Duplicate emails are rejected.
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleOperator
	}
	if !req.Role.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid role. Must be: ADMIN, OPERATOR or FISCAL"})
		return
	}

	if _, err := h.users.GetByEmail(req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: hash,
		AssignedCity: req.AssignedCity,
	}
	if err := h.users.Create(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser applies a partial update; absent fields stay untouched and the
// password is rehashed only when a non-blank one is supplied.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid user id"})
		return
	}
	user, err := h.users.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if req.Role != nil && !req.Role.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid role. Must be: ADMIN, OPERATOR or FISCAL"})
		return
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := h.users.GetByEmail(*req.Email); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.AssignedCity != nil {
		user.AssignedCity = req.AssignedCity
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.PasswordHash = hash
	}

	if err := h.users.Save(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes the user row only; records that reference it are left
// alone.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid user id"})
		return
	}
	if err := h.users.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
