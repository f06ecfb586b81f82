// Command cli is an interactive smoke-test client for the registry API.
// It prompts for a new user's fields, creates the record, then walks the
// remaining operations against it: list, get, partial update, delete.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/term"
)

func main() {
	server := flag.String("s", "http://localhost:5000", "registry server base URL")
	flag.Parse()

	if err := run(*server); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(baseURL string) error {
	reader := bufio.NewReader(os.Stdin)

	role, err := getSimpleText(reader, "Role (caregiver/patient)", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	nationalID, err := getSimpleText(reader, "National ID (optional)", os.Stdout)
	if err != nil {
		return err
	}

	c := &client{baseURL: strings.TrimRight(baseURL, "/"), http: http.DefaultClient}

	fields := map[string]any{
		"role":     role,
		"email":    email,
		"password": string(password),
	}
	if nationalID != "" {
		fields["nationalId"] = nationalID
	}

	fmt.Println("--- POST /api/users")
	created, err := c.do(http.MethodPost, "/api/users", fields)
	if err != nil {
		return err
	}

	id, ok := created["id"].(float64)
	if !ok {
		return errors.New("create response carries no id")
	}
	userPath := fmt.Sprintf("/api/users/%d", int64(id))

	fmt.Println("--- GET /api/users")
	if _, err := c.do(http.MethodGet, "/api/users", nil); err != nil {
		return err
	}

	fmt.Println("--- GET " + userPath)
	if _, err := c.do(http.MethodGet, userPath, nil); err != nil {
		return err
	}

	fmt.Println("--- PUT " + userPath)
	patch := map[string]any{"phone": "(11) 88888-8888", "city": "Campinas"}
	if _, err := c.do(http.MethodPut, userPath, patch); err != nil {
		return err
	}

	fmt.Println("--- DELETE " + userPath)
	if _, err := c.do(http.MethodDelete, userPath, nil); err != nil {
		return err
	}

	fmt.Println("--- DELETE " + userPath + " (again, expecting not-found)")
	if _, err := c.do(http.MethodDelete, userPath, nil); err == nil {
		return errors.New("second delete unexpectedly succeeded")
	}

	fmt.Println("done")
	return nil
}

type client struct {
	baseURL string
	http    *http.Client
}

// do sends an optional JSON body, prints the response, and decodes it into
// a generic map. Non-2xx statuses are returned as errors.
func (c *client) do(method, path string, body map[string]any) (map[string]any, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	fmt.Printf("%s %s\n", resp.Status, strings.TrimSpace(string(raw)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}

	result := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// getSimpleText prints a prompt to w and reads a single trimmed line.
func getSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// getPassword reads a password from the terminal without echo.
func getPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
