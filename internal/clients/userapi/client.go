package userapi

import (
	"context"
	"fmt"
	"time"

	"userhub/internal/httpclient"
	"userhub/internal/logging"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DeleteResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Client calls the users HTTP API. Every error it returns is an *httpclient.APIError.
type Client struct {
	http   *httpclient.Client
	logger logging.Logger
}

func New(baseURL string, timeout time.Duration, logger logging.Logger) (*Client, error) {
	httpCli, err := httpclient.New(baseURL, timeout, logger.With("component", "users_http"))
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   httpCli,
		logger: logger,
	}, nil
}

func (c *Client) GetAll(ctx context.Context) ([]User, error) {
	var res []User
	if err := c.http.GetJSON(ctx, "/users", &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) GetByID(ctx context.Context, id int64) (User, error) {
	var res User
	err := c.http.GetJSON(ctx, userPath(id), &res)
	return res, err
}

func (c *Client) Create(ctx context.Context, in UserInput) (User, error) {
	var res User
	err := c.http.PostJSON(ctx, "/users", in, &res)
	return res, err
}

func (c *Client) Update(ctx context.Context, id int64, in UserInput) (User, error) {
	var res User
	err := c.http.PutJSON(ctx, userPath(id), in, &res)
	return res, err
}

func (c *Client) Delete(ctx context.Context, id int64) (DeleteResult, error) {
	var res DeleteResult
	err := c.http.DeleteJSON(ctx, userPath(id), &res)
	return res, err
}

func userPath(id int64) string {
	return fmt.Sprintf("/users/%d", id)
}
