package server

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"discovery-space/internal/db"

	"gorm.io/gorm"
)

// newClient keeps cookies between requests and never follows redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func doRequest(t *testing.T, client *http.Client, ts *httptest.Server, method, path string, form url.Values) *http.Response {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return send(t, client, req)
}

func doMultipart(t *testing.T, client *http.Client, ts *httptest.Server, path string, fields map[string]string, filename, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.WriteString(part, content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return send(t, client, req)
}

func send(t *testing.T, client *http.Client, req *http.Request) *http.Response {
	t.Helper()
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func expectStatus(t *testing.T, resp *http.Response, status int) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("expected status %d, got %d", status, resp.StatusCode)
	}
}

func expectRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	expectStatus(t, resp, http.StatusFound)
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

// expectFlash loads path and checks that message is rendered on it.
func expectFlash(t *testing.T, client *http.Client, ts *httptest.Server, path, message string) {
	t.Helper()
	resp := doRequest(t, client, ts, http.MethodGet, path, nil)
	body := readBody(t, resp)
	if !strings.Contains(body, html.EscapeString(message)) {
		t.Fatalf("expected flash %q on %s", message, path)
	}
}

func loginStaff(t *testing.T, client *http.Client, ts *httptest.Server, conn *gorm.DB) {
	t.Helper()
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := db.User{Username: "staff", PasswordHash: hash}
	if err := conn.Where(db.User{Username: "staff"}).FirstOrCreate(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	resp := doRequest(t, client, ts, http.MethodPost, "/login", url.Values{
		"username": {"staff"},
		"password": {"s3cret"},
	})
	expectRedirect(t, resp, "/home")
}

func seedGame(t *testing.T, conn *gorm.DB, title string, mode db.Mode) db.Game {
	t.Helper()
	var gameMode db.GameMode
	if err := conn.Where("mode = ?", mode).First(&gameMode).Error; err != nil {
		t.Fatalf("load mode: %v", err)
	}
	game := db.Game{Title: title, Description: title + " description", GameModeID: gameMode.ID}
	if err := conn.Omit("GameMode").Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	return game
}

func seedDevice(t *testing.T, conn *gorm.DB, gameID uint, name, tag, file string) db.Device {
	t.Helper()
	device := db.Device{Name: name, Description: name + " description", RFIDTag: tag, FileLoc: file}
	if err := conn.Create(&device).Error; err != nil {
		t.Fatalf("create device: %v", err)
	}
	if err := conn.Exec("INSERT INTO game_devices (game_id, device_id) VALUES (?, ?)", gameID, device.ID).Error; err != nil {
		t.Fatalf("link device: %v", err)
	}
	return device
}

func seedQuestion(t *testing.T, conn *gorm.DB, gameID uint, text string, answers ...db.Device) db.Question {
	t.Helper()
	question := db.Question{Question: text, GameID: gameID, Answers: answers}
	if err := conn.Omit("Answers.*").Create(&question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return question
}
