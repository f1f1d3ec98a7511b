package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/crier-dev/crier/internal/domain"
	internal_errors "github.com/crier-dev/crier/internal/errors"
)

// MockBoardService mocks the BoardService interface.
type MockBoardService struct {
	MockCreate             func(data domain.BoardCreationData) (domain.BoardId, error)
	MockGet                func(id domain.BoardId, viewer domain.UserId) (domain.Board, error)
	MockList               func(search string, offset int, viewer domain.UserId) ([]domain.BoardMetadata, error)
	MockUserBoards         func(viewer domain.UserId) ([]domain.BoardMetadata, error)
	MockDelete             func(id domain.BoardId, caller *domain.User) error
	MockToggleSubscription func(id domain.BoardId, userId domain.UserId) (bool, error)
}

func (m *MockBoardService) Create(data domain.BoardCreationData) (domain.BoardId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return 1, nil
}

func (m *MockBoardService) Get(id domain.BoardId, viewer domain.UserId) (domain.Board, error) {
	if m.MockGet != nil {
		return m.MockGet(id, viewer)
	}
	return domain.Board{}, nil
}

func (m *MockBoardService) List(search string, offset int, viewer domain.UserId) ([]domain.BoardMetadata, error) {
	if m.MockList != nil {
		return m.MockList(search, offset, viewer)
	}
	return nil, nil
}

func (m *MockBoardService) UserBoards(viewer domain.UserId) ([]domain.BoardMetadata, error) {
	if m.MockUserBoards != nil {
		return m.MockUserBoards(viewer)
	}
	return nil, nil
}

func (m *MockBoardService) Delete(id domain.BoardId, caller *domain.User) error {
	if m.MockDelete != nil {
		return m.MockDelete(id, caller)
	}
	return nil
}

func (m *MockBoardService) ToggleSubscription(id domain.BoardId, userId domain.UserId) (bool, error) {
	if m.MockToggleSubscription != nil {
		return m.MockToggleSubscription(id, userId)
	}
	return true, nil
}

func TestCreateBoardHandler(t *testing.T) {
	h := &Handler{cfg: testConfig()}

	router := mux.NewRouter()
	router.HandleFunc("/v1/boards", func(w http.ResponseWriter, r *http.Request) {
		h.CreateBoard(w, asUser(r, domain.User{Id: 42}))
	}).Methods("POST")

	requestBody := []byte(`{"name": "golang", "description": "go talk", "vote_threshold": 30}`)

	t.Run("successful request", func(t *testing.T) {
		h.board = &MockBoardService{
			MockCreate: func(data domain.BoardCreationData) (domain.BoardId, error) {
				assert.Equal(t, domain.UserId(42), data.CreatedBy)
				assert.Equal(t, 30, data.VoteThreshold)
				return 5, nil
			},
		}
		req := createRequest(t, http.MethodPost, "/v1/boards", requestBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"board_id":5}`, rr.Body.String())
	})

	t.Run("invalid request body", func(t *testing.T) {
		h.board = &MockBoardService{}
		req := createRequest(t, http.MethodPost, "/v1/boards", []byte(`{invalid json::}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service error", func(t *testing.T) {
		h.board = &MockBoardService{
			MockCreate: func(data domain.BoardCreationData) (domain.BoardId, error) {
				return 0, errors.New("mock create error")
			},
		}
		req := createRequest(t, http.MethodPost, "/v1/boards", requestBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetBoardsHandler(t *testing.T) {
	h := &Handler{cfg: testConfig()}

	router := mux.NewRouter()
	router.HandleFunc("/v1/boards", h.GetBoards).Methods("GET")

	t.Run("passes search and offset through", func(t *testing.T) {
		h.board = &MockBoardService{
			MockList: func(search string, offset int, viewer domain.UserId) ([]domain.BoardMetadata, error) {
				assert.Equal(t, "go", search)
				assert.Equal(t, 2, offset)
				return []domain.BoardMetadata{{Id: 1, Name: "golang"}}, nil
			},
		}
		req := createRequest(t, http.MethodGet, "/v1/boards?search=go&offset=2", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var boards []domain.BoardMetadata
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &boards))
		assert.Len(t, boards, 1)
	})

	t.Run("anonymous viewer", func(t *testing.T) {
		h.board = &MockBoardService{
			MockList: func(search string, offset int, viewer domain.UserId) ([]domain.BoardMetadata, error) {
				assert.Equal(t, domain.UserId(0), viewer)
				return nil, nil
			},
		}
		req := createRequest(t, http.MethodGet, "/v1/boards", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestGetBoardHandler(t *testing.T) {
	h := &Handler{cfg: testConfig()}

	router := mux.NewRouter()
	router.HandleFunc("/v1/boards/{board}", h.GetBoard).Methods("GET")

	t.Run("successful request", func(t *testing.T) {
		h.board = &MockBoardService{
			MockGet: func(id domain.BoardId, viewer domain.UserId) (domain.Board, error) {
				assert.Equal(t, domain.BoardId(5), id)
				return domain.Board{BoardMetadata: domain.BoardMetadata{Id: 5, Name: "golang"}}, nil
			},
		}
		req := createRequest(t, http.MethodGet, "/v1/boards/5", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		h.board = &MockBoardService{}
		req := createRequest(t, http.MethodGet, "/v1/boards/abc", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing board", func(t *testing.T) {
		h.board = &MockBoardService{
			MockGet: func(id domain.BoardId, viewer domain.UserId) (domain.Board, error) {
				return domain.Board{}, internal_errors.NotFound
			},
		}
		req := createRequest(t, http.MethodGet, "/v1/boards/5", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteBoardHandler(t *testing.T) {
	h := &Handler{cfg: testConfig()}

	router := mux.NewRouter()
	router.HandleFunc("/v1/boards/{board}", func(w http.ResponseWriter, r *http.Request) {
		h.DeleteBoard(w, asUser(r, domain.User{Id: 42}))
	}).Methods("DELETE")

	t.Run("successful request", func(t *testing.T) {
		h.board = &MockBoardService{
			MockDelete: func(id domain.BoardId, caller *domain.User) error {
				assert.Equal(t, domain.BoardId(5), id)
				assert.Equal(t, domain.UserId(42), caller.Id)
				return nil
			},
		}
		req := createRequest(t, http.MethodDelete, "/v1/boards/5", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not the owner", func(t *testing.T) {
		h.board = &MockBoardService{
			MockDelete: func(id domain.BoardId, caller *domain.User) error {
				return &internal_errors.ErrorWithStatusCode{Message: "forbidden", StatusCode: http.StatusForbidden}
			},
		}
		req := createRequest(t, http.MethodDelete, "/v1/boards/5", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestToggleSubscriptionHandler(t *testing.T) {
	h := &Handler{cfg: testConfig()}

	router := mux.NewRouter()
	router.HandleFunc("/v1/boards/{board}/subscribe", func(w http.ResponseWriter, r *http.Request) {
		h.ToggleSubscription(w, asUser(r, domain.User{Id: 42}))
	}).Methods("POST")

	h.board = &MockBoardService{
		MockToggleSubscription: func(id domain.BoardId, userId domain.UserId) (bool, error) {
			assert.Equal(t, domain.BoardId(5), id)
			assert.Equal(t, domain.UserId(42), userId)
			return true, nil
		},
	}
	req := createRequest(t, http.MethodPost, "/v1/boards/5/subscribe", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"subscribed":true}`, rr.Body.String())
}
