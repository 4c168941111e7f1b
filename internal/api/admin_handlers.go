package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/http/response"
	"github.com/storefrontapp/storefront-server/internal/service"
)

// handleSaveProduct handles both create (POST) and update (PUT).
func (s *Server) handleSaveProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := s.decode(r, &product); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		product.ID = id
	}

	saved, err := s.admin.SaveProduct(r.Context(), claimsFrom(r.Context()), &product)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if r.Method == http.MethodPost {
		response.Created(w, saved, s.logger)
		return
	}
	response.Success(w, saved, s.logger)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	err := s.admin.DeleteProduct(r.Context(), claimsFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleSaveCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := s.decode(r, &category); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if key := chi.URLParam(r, "key"); key != "" {
		category.Key = key
	}

	if err := s.admin.SaveCategory(r.Context(), claimsFrom(r.Context()), category); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, category, s.logger)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	err := s.admin.DeleteCategory(r.Context(), claimsFrom(r.Context()), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleSaveMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := s.decode(r, &item); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if key := chi.URLParam(r, "key"); key != "" {
		item.Key = key
	}

	if err := s.admin.SaveMenuItem(r.Context(), claimsFrom(r.Context()), item); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, item, s.logger)
}

func (s *Server) handleDeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	err := s.admin.DeleteMenuItem(r.Context(), claimsFrom(r.Context()), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleSavePage(w http.ResponseWriter, r *http.Request) {
	var page domain.Page
	if err := s.decode(r, &page); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if key := chi.URLParam(r, "key"); key != "" {
		page.Key = key
	}

	if err := s.admin.SavePage(r.Context(), claimsFrom(r.Context()), page); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, page, s.logger)
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	err := s.admin.DeletePage(r.Context(), claimsFrom(r.Context()), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleSaveTag(w http.ResponseWriter, r *http.Request) {
	var tag domain.Tag
	if err := s.decode(r, &tag); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		tag.ID = id
	}

	if err := s.admin.SaveTag(r.Context(), claimsFrom(r.Context()), tag); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tag, s.logger)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	err := s.admin.DeleteTag(r.Context(), claimsFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleSaveType(w http.ResponseWriter, r *http.Request) {
	var sizeType domain.SizeType
	if err := s.decode(r, &sizeType); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		sizeType.ID = id
	}

	if err := s.admin.SaveType(r.Context(), claimsFrom(r.Context()), sizeType); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, sizeType, s.logger)
}

func (s *Server) handleDeleteType(w http.ResponseWriter, r *http.Request) {
	err := s.admin.DeleteType(r.Context(), claimsFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleSaveLevel(w http.ResponseWriter, r *http.Request) {
	var level domain.PriceLevel
	if err := s.decode(r, &level); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		level.ID = id
	}

	if err := s.admin.SaveLevel(r.Context(), claimsFrom(r.Context()), level); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, level, s.logger)
}

func (s *Server) handleDeleteLevel(w http.ResponseWriter, r *http.Request) {
	err := s.admin.DeleteLevel(r.Context(), claimsFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

// handleListAudit returns the newest audit entries. Readable by every
// authenticated role.
func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := s.admin.Audit(r.Context(), queryInt(r, "limit", 100))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, entries, s.logger)
}

// handleTriggerSync runs one catalog refresh pass synchronously.
func (s *Server) handleTriggerSync(w http.ResponseWriter, r *http.Request) {
	s.sync.RunOnce(r.Context())
	response.Success(w, map[string]string{"status": "completed"}, s.logger)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.admin.ListUsers(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, users, s.logger)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var input service.CreateUserInput
	if err := s.decode(r, &input); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	user, err := s.admin.CreateUser(r.Context(), claimsFrom(r.Context()), input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, user, s.logger)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateUserInput
	if err := s.decode(r, &input); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	user, err := s.admin.UpdateUser(r.Context(), claimsFrom(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, user, s.logger)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	err := s.admin.DeleteUser(r.Context(), claimsFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
