package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/faktur/pkg/db/pagination"
)

type CreateClientRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedBy string `json:"created_by"`
}

type GetClientRequest struct {
	ID string
}

type ListClientRequest struct {
	PageToken string
	PageSize  int32
	Name      string
	CreatedBy string
}

type ListClientFilter struct {
	Name      string
	CreatedBy string
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type Service interface {
	Create(context.Context, CreateClientRequest) (Client, error)
	List(context.Context, ListClientRequest) (ListClientResponse, error)
	GetByID(context.Context, GetClientRequest) (Client, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
