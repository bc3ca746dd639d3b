package request

import (
	"net/url"
	"strings"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (r *RegisterRequest) FromForm(form url.Values) {
	r.Name = strings.TrimSpace(form.Get("name"))
	r.Email = strings.TrimSpace(form.Get("email"))
	r.Password = form.Get("password")
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) FromForm(form url.Values) {
	r.Email = strings.TrimSpace(form.Get("email"))
	r.Password = form.Get("password")
}
