package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"nachapa-api/internal/domain"
)

func TestList_RequiresBearerToken(t *testing.T) {
	router, _, _ := setupAPI(t)

	rec := doJSON(router, http.MethodGet, "/api/users", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestList_ReturnsSortedPage(t *testing.T) {
	router, _, tokens := setupAPI(t)

	people := []struct{ name, email, cpf string }{
		{"Carla Dias", "carla@x.com", "20716166003"},
		{"Ana Lima", "ana@x.com", "10716166004"},
		{"Bruno Reis", "bruno@x.com", "30716166005"},
	}
	for _, p := range people {
		body := fmt.Sprintf(`{
			"nome": %q,
			"email": %q,
			"senha": "secret123",
			"cpf": %q,
			"telefone": "31998765432",
			"data-nascimento": "20/10/1998"
		}`, p.name, p.email, p.cpf)
		if rec := doJSON(router, http.MethodPost, "/api/auth/register", body, ""); rec.Code != http.StatusCreated {
			t.Fatalf("register %s: %d %s", p.name, rec.Code, rec.Body.String())
		}
	}

	token, err := tokens.Generate("ana@x.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doJSON(router, http.MethodGet, "/api/users?page=0&size=10&sort=name,desc", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var page struct {
		Content []struct {
			Name string `json:"nome"`
			Age  int    `json:"age"`
		} `json:"content"`
		Number        int   `json:"number"`
		Size          int   `json:"size"`
		TotalElements int64 `json:"totalElements"`
		TotalPages    int   `json:"totalPages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.TotalElements != 3 || page.TotalPages != 1 || page.Size != 10 {
		t.Fatalf("unexpected metadata: %+v", page)
	}
	for i := 1; i < len(page.Content); i++ {
		if page.Content[i-1].Name < page.Content[i].Name {
			t.Fatalf("expected non-increasing names: %s before %s", page.Content[i-1].Name, page.Content[i].Name)
		}
	}
	for _, item := range page.Content {
		if item.Age <= 0 {
			t.Fatalf("expected derived age, got %d", item.Age)
		}
	}
}

func TestUpdate_ReturnsExternalView(t *testing.T) {
	router, repo, tokens := setupAPI(t)

	if rec := doJSON(router, http.MethodPost, "/api/auth/register", registerBody, ""); rec.Code != http.StatusCreated {
		t.Fatalf("register: %d", rec.Code)
	}
	user, err := repo.GetByEmail(context.Background(), "maria@x.com")
	if err != nil {
		t.Fatalf("stored user: %v", err)
	}
	token, err := tokens.Generate(user.Email, user.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	body := `{
		"nome": "Maria Souza",
		"email": "maria@x.com",
		"senha": "",
		"cpf": "20716166003",
		"telefone": "31998765432",
		"data-nascimento": "20/10/1998"
	}`
	rec := doJSON(router, http.MethodPut, "/api/users/"+user.ID, body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view struct {
		Name      string `json:"nome"`
		Email     string `json:"email"`
		Cpf       string `json:"cpf"`
		CellPhone string `json:"telefone"`
		BirthDate string `json:"data-nascimento"`
		Age       int    `json:"age"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Name != "Maria Souza" || view.Cpf != "20716166003" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.BirthDate != "20/10/1998" {
		t.Fatalf("expected DD/MM/YYYY birth date, got %s", view.BirthDate)
	}
	if view.Age <= 0 {
		t.Fatalf("expected derived age, got %d", view.Age)
	}
}

func TestUpdate_CpfChangeRejected(t *testing.T) {
	router, repo, tokens := setupAPI(t)

	if rec := doJSON(router, http.MethodPost, "/api/auth/register", registerBody, ""); rec.Code != http.StatusCreated {
		t.Fatalf("register: %d", rec.Code)
	}
	user, _ := repo.GetByEmail(context.Background(), "maria@x.com")
	token, err := tokens.Generate(user.Email, user.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	body := `{
		"nome": "Maria Souza",
		"email": "maria@x.com",
		"senha": "",
		"cpf": "98765432100",
		"telefone": "31998765432",
		"data-nascimento": "20/10/1998"
	}`
	rec := doJSON(router, http.MethodPut, "/api/users/"+user.ID, body, token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	code, message := decodeError(t, rec)
	if code != "5005" || message != "CPF não pode ser alterado." {
		t.Fatalf("unexpected error: %s %s", code, message)
	}

	stored, _ := repo.GetByID(context.Background(), user.ID)
	if stored.Cpf != "20716166003" {
		t.Fatalf("stored cpf must stay intact, got %s", stored.Cpf)
	}
}

func TestDeactivate_SoftDeletesOnce(t *testing.T) {
	router, repo, tokens := setupAPI(t)

	if rec := doJSON(router, http.MethodPost, "/api/auth/register", registerBody, ""); rec.Code != http.StatusCreated {
		t.Fatalf("register: %d", rec.Code)
	}
	user, _ := repo.GetByEmail(context.Background(), "maria@x.com")
	token, err := tokens.Generate(user.Email, user.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doJSON(router, http.MethodDelete, "/api/users/"+user.ID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	stored, _ := repo.GetByID(context.Background(), user.ID)
	if stored.Active {
		t.Fatalf("account must be inactive")
	}

	rec = doJSON(router, http.MethodDelete, "/api/users/"+user.ID, "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second deactivate must fail, got %d", rec.Code)
	}
	code, message := decodeError(t, rec)
	if code != "5002" || message != "Usuário não encontrado" {
		t.Fatalf("unexpected error: %s %s", code, message)
	}
}

func TestUpdate_MalformedID(t *testing.T) {
	router, _, tokens := setupAPI(t)

	token, err := tokens.Generate("maria@x.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doJSON(router, http.MethodPut, "/api/users/abc", registerBody, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-UUID id, got %d", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "5002" {
		t.Fatalf("expected code 5002, got %s", code)
	}
}

func TestDeactivate_MalformedID(t *testing.T) {
	router, _, tokens := setupAPI(t)

	token, err := tokens.Generate("maria@x.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doJSON(router, http.MethodDelete, "/api/users/abc", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-UUID id, got %d", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "5002" {
		t.Fatalf("expected code 5002, got %s", code)
	}
}

func TestDeactivate_UnknownID(t *testing.T) {
	router, _, tokens := setupAPI(t)

	token, err := tokens.Generate("maria@x.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doJSON(router, http.MethodDelete, "/api/users/00000000-0000-0000-0000-000000000000", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "5002" {
		t.Fatalf("expected code 5002, got %s", code)
	}
}
