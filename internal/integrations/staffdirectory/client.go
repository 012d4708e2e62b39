package staffdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Client клиент внешнего справочника сотрудников
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника сотрудников
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListBookableStaff получает сотрудников, на которых можно записаться, по возрастанию id
func (c *Client) ListBookableStaff(ctx context.Context) ([]*domain.Staff, error) {
	url := fmt.Sprintf("%s/internal/staff?bookable=true", c.baseURL)

	var payload []Staff
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}

	roster := make([]*domain.Staff, 0, len(payload))
	for _, s := range payload {
		staff := s.ToDomain()
		if !staff.IsBookable() {
			continue
		}
		roster = append(roster, staff)
	}

	c.log.Info("StaffDirectory: fetched %d bookable staff", len(roster))
	return roster, nil
}

// GetStaff получает сотрудника по ID
func (c *Client) GetStaff(ctx context.Context, id int64) (*domain.Staff, error) {
	url := fmt.Sprintf("%s/internal/staff/%d", c.baseURL, id)

	var payload Staff
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}

	staff := payload.ToDomain()
	if !staff.IsBookable() {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("StaffDirectory: request %s failed: %v", url, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrStaffNotFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: bad request", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
