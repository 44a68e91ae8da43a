// Package client is a typed HTTP client for the library service, covering
// every endpoint the browser panels call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/libraops/library-service/internal/domain"
)

// APIError is returned for any non-2xx response, carrying the error
// message from the response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	httpc   *http.Client

	Books     *BooksClient
	Customers *CustomersClient
}

func New(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   http.DefaultClient,
	}
	c.Books = &BooksClient{c: c}
	c.Customers = &CustomersClient{c: c}
	return c
}

// do performs a JSON request and decodes a 2xx response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error json.RawMessage `json:"error"`
		}
		message := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && len(errBody.Error) > 0 {
			message = string(errBody.Error)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type BooksClient struct {
	c *Client
}

func (b *BooksClient) Create(ctx context.Context, req domain.CreateBookRequest) (*domain.Book, error) {
	var resp domain.BookResponse
	if err := b.c.do(ctx, http.MethodPost, "/books", req, &resp); err != nil {
		return nil, err
	}
	return resp.Book, nil
}

func (b *BooksClient) List(ctx context.Context) ([]domain.Book, error) {
	var resp domain.BookListResponse
	if err := b.c.do(ctx, http.MethodGet, "/books", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

func (b *BooksClient) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	var resp domain.CategorySearchResponse
	if err := b.c.do(ctx, http.MethodGet, "/books/category/"+category, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

func (b *BooksClient) ListAfterYear(ctx context.Context, year int) ([]domain.Book, error) {
	var resp domain.YearSearchResponse
	if err := b.c.do(ctx, http.MethodGet, fmt.Sprintf("/books/year/%d", year), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

func (b *BooksClient) Get(ctx context.Context, id string) (*domain.Book, error) {
	var book domain.Book
	if err := b.c.do(ctx, http.MethodGet, "/books/"+id, nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (b *BooksClient) AdjustCopies(ctx context.Context, id string, quantity int) (*domain.Book, error) {
	q := float64(quantity)
	var resp domain.BookResponse
	err := b.c.do(ctx, http.MethodPatch, "/books/"+id+"/copies",
		domain.AdjustCopiesRequest{Quantity: &q}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Book, nil
}

func (b *BooksClient) UpdateCategory(ctx context.Context, id, category string) (*domain.Book, error) {
	var resp domain.BookResponse
	err := b.c.do(ctx, http.MethodPatch, "/books/"+id+"/category",
		domain.UpdateCategoryRequest{Category: category}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Book, nil
}

func (b *BooksClient) Update(ctx context.Context, id string, req domain.UpdateBookRequest) (*domain.Book, error) {
	var resp domain.BookResponse
	if err := b.c.do(ctx, http.MethodPut, "/books/"+id, req, &resp); err != nil {
		return nil, err
	}
	return resp.Book, nil
}

func (b *BooksClient) Delete(ctx context.Context, id string) (*domain.Book, error) {
	var resp domain.DeleteBookResponse
	if err := b.c.do(ctx, http.MethodDelete, "/books/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return resp.DeletedBook, nil
}

type CustomersClient struct {
	c *Client
}

func (cc *CustomersClient) Create(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	var customer domain.Customer
	if err := cc.c.do(ctx, http.MethodPost, "/customers", req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (cc *CustomersClient) List(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := cc.c.do(ctx, http.MethodGet, "/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (cc *CustomersClient) Get(ctx context.Context, id string) (*domain.Customer, error) {
	var customer domain.Customer
	if err := cc.c.do(ctx, http.MethodGet, "/customers/"+id, nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (cc *CustomersClient) Update(ctx context.Context, id string, req domain.UpdateCustomerRequest) (*domain.Customer, error) {
	var customer domain.Customer
	if err := cc.c.do(ctx, http.MethodPut, "/customers/"+id, req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (cc *CustomersClient) Delete(ctx context.Context, id string) error {
	return cc.c.do(ctx, http.MethodDelete, "/customers/"+id, nil, nil)
}
