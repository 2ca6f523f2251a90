package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// ErrBookNotFound is returned by MyBook when no book matches the ID
var ErrBookNotFound = errors.New("book not found")

// ListBooksParams filters and pages the book listing
type ListBooksParams struct {
	Page   int
	Limit  int
	Status BookStatus
	Search string
}

// BookData carries the writable book fields for create and update.
// Nil pointers are omitted so partial updates stay partial.
type BookData struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
	CoverURL    *string  `json:"coverUrl,omitempty"`
	FileURL     *string  `json:"fileUrl,omitempty"`
	FileSize    *int64   `json:"fileSize,omitempty"`
	FileFormat  *string  `json:"fileFormat,omitempty"`
	ISBN        *string  `json:"isbn,omitempty"`
	Language    *string  `json:"language,omitempty"`
	PageCount   *int     `json:"pageCount,omitempty"`
}

// UploadedFile describes a stored book file
type UploadedFile struct {
	URL    string `json:"url"`
	Size   int64  `json:"size"`
	Format string `json:"format"`
}

// MyBooks lists the current author's books
func (c *Client) MyBooks(ctx context.Context, params ListBooksParams) (*Page[Book], error) {
	values := url.Values{}
	if params.Page > 0 {
		values.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Status != "" {
		values.Set("status", string(params.Status))
	}
	if params.Search != "" {
		values.Set("search", params.Search)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/books/me"+listQuery(values), nil)
	if err != nil {
		return nil, err
	}

	return parsePage[Book](resp)
}

// MyBook fetches a single book by ID. The API has no dedicated single-book
// endpoint for authors, so this filters the listing.
func (c *Client) MyBook(ctx context.Context, id string) (*Book, error) {
	page, err := c.MyBooks(ctx, ListBooksParams{Limit: 100})
	if err != nil {
		return nil, err
	}

	for i := range page.Items {
		if page.Items[i].ID == id {
			return &page.Items[i], nil
		}
	}

	return nil, ErrBookNotFound
}

// CreateBook creates a draft book
func (c *Client) CreateBook(ctx context.Context, data BookData) (*Book, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/books", data)
	if err != nil {
		return nil, err
	}

	var book Book
	if err := parseResponse(resp, &book); err != nil {
		return nil, err
	}

	return &book, nil
}

// UpdateBook edits an existing book
func (c *Client) UpdateBook(ctx context.Context, id string, data BookData) (*Book, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/books/"+id, data)
	if err != nil {
		return nil, err
	}

	var book Book
	if err := parseResponse(resp, &book); err != nil {
		return nil, err
	}

	return &book, nil
}

// DeleteBook removes a book
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/books/"+id, nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// SubmitBook sends a draft to review
func (c *Client) SubmitBook(ctx context.Context, id string) (*Book, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/books/"+id+"/submit", nil)
	if err != nil {
		return nil, err
	}

	var book Book
	if err := parseResponse(resp, &book); err != nil {
		return nil, err
	}

	return &book, nil
}

// Categories lists the available book categories
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}

	var categories []Category
	if err := parseResponse(resp, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// UploadCover uploads a cover image and returns its URL
func (c *Client) UploadCover(ctx context.Context, filename string, file io.Reader) (string, error) {
	resp, err := c.doUpload(ctx, "/upload/cover", filename, file)
	if err != nil {
		return "", err
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := parseResponse(resp, &payload); err != nil {
		return "", err
	}

	return payload.URL, nil
}

// UploadBook uploads a book file and returns its storage details
func (c *Client) UploadBook(ctx context.Context, filename string, file io.Reader) (*UploadedFile, error) {
	resp, err := c.doUpload(ctx, "/upload/book", filename, file)
	if err != nil {
		return nil, err
	}

	var uploaded UploadedFile
	if err := parseResponse(resp, &uploaded); err != nil {
		return nil, err
	}

	return &uploaded, nil
}
