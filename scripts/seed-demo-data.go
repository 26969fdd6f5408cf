// Seeds a running local server with a demo account, a course with a couple
// of registered drive files, and an open tutor session. Handy for poking at
// the API from the frontend without clicking through registration.
//
// Usage: go run scripts/seed-demo-data.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"
)

const apiBase = "http://localhost:8000/api/v1"

type DemoUser struct {
	Email    string
	Password string
	Token    string
	UserID   string
}

func registerUser(email, password string) (*DemoUser, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := http.Post(apiBase+"/user/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("registration failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	user := &DemoUser{Email: result.Email, Password: password, UserID: result.ID}

	body, _ = json.Marshal(map[string]string{"email": email, "password": password})
	loginResp, err := http.Post(apiBase+"/user/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer loginResp.Body.Close()

	var tokenResult struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(loginResp.Body).Decode(&tokenResult); err != nil {
		return nil, fmt.Errorf("decode login failed: %w", err)
	}
	user.Token = tokenResult.AccessToken
	return user, nil
}

func postJSON(token, path string, payload map[string]any, out any) error {
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", apiBase+path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s failed (%d): %s", path, resp.StatusCode, string(bodyBytes))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
	}
	return nil
}

func generateEmail() string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	random := make([]byte, 4)
	for i := range random {
		random[i] = letters[rand.Intn(len(letters))]
	}
	return fmt.Sprintf("demo_%d_%s@example.com", time.Now().Unix(), string(random))
}

func main() {
	user, err := registerUser(generateEmail(), "Demo1pass!")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to register: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("registered %s\n", user.Email)

	var course struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := postJSON(user.Token, "/courses/", map[string]any{"name": "Intro to Biology"}, &course); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create course: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("created course %s (%s)\n", course.Name, course.ID)

	for i, name := range []string{"syllabus.pdf", "week1-notes.pdf"} {
		err := postJSON(user.Token, "/files/", map[string]any{
			"name":        name,
			"courseId":    course.ID,
			"driveFileId": fmt.Sprintf("demo-drive-file-%d", i+1),
		}, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to register file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("registered file %s\n", name)
	}

	var session struct {
		ID string `json:"id"`
	}
	err = postJSON(user.Token, "/tutor-sessions/", map[string]any{
		"courseId": course.ID,
		"title":    "Demo session",
	}, &session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create session: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("created tutor session %s\n", session.ID)

	fmt.Println()
	fmt.Println("Demo data ready:")
	fmt.Printf("  email:    %s\n", user.Email)
	fmt.Printf("  password: Demo1pass!\n")
	fmt.Printf("  token:    %s\n", user.Token)
}
