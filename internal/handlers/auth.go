package handlers

import (
	"net/http"
	"strings"

	"coltrane/internal/db"
	"coltrane/internal/models"
	"coltrane/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if username == "" {
		parts := strings.Split(email, "@")
		if len(parts) == 2 {
			username = parts[0]
		}
	}
	if username == "" || !strings.Contains(email, "@") {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": "A username and a valid email are required."})
		return
	}
	if len(password) < 6 {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": "Password must be at least 6 characters."})
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		Render(c, http.StatusInternalServerError, "auth/register.html", gin.H{"Error": "Registration failed."})
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		Render(c, http.StatusConflict, "auth/register.html", gin.H{"Error": "Email already registered."})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong email or password."})
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong email or password."})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
