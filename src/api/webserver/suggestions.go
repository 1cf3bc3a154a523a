package webserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stake-plus/suggestions/src/suggestion"
)

type Suggestions struct {
	svc *suggestion.Service
}

func NewSuggestions(svc *suggestion.Service) Suggestions {
	return Suggestions{svc: svc}
}

type statusView struct {
	Status  string `json:"status"`
	Label   string `json:"label"`
	Updater string `json:"updater"`
	Reason  string `json:"reason,omitempty"`
}

type suggestionView struct {
	ID        string      `json:"id"`
	Namespace string      `json:"namespace"`
	Author    string      `json:"author,omitempty"`
	Anonymous bool        `json:"anonymous"`
	Title     string      `json:"title,omitempty"`
	Body      string      `json:"body,omitempty"`
	Teams     string      `json:"teams,omitempty"`
	Status    *statusView `json:"status,omitempty"`
	Deleted   bool        `json:"deleted"`
	Deleter   string      `json:"deleter,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// view projects a record for API consumers. Tombstones expose only the
// identifier and who deleted the record; anonymous records hide the
// author unless the caller is trusted.
func (h Suggestions) view(c *gin.Context, rec *suggestion.Suggestion, trusted bool) suggestionView {
	displayID, err := h.svc.DisplayIdentifier(c.Request.Context(), rec)
	if err != nil {
		displayID = "?"
	}

	v := suggestionView{
		ID:        displayID,
		Namespace: string(rec.Namespace),
		Anonymous: rec.Anonymous,
		CreatedAt: rec.CreatedAt,
	}

	p := suggestion.Present(rec)
	if p.Kind == suggestion.PresentationTombstone {
		v.Deleted = true
		v.Deleter = p.Deleter
		return v
	}

	v.Title = rec.Title
	v.Body = rec.Body
	if rec.Teams != nil {
		v.Teams = *rec.Teams
	}
	if !rec.Anonymous || trusted {
		v.Author = rec.Author
	}
	if p.Kind == suggestion.PresentationActive {
		v.Status = &statusView{
			Status:  string(p.Status),
			Label:   p.StatusLabel,
			Updater: p.StatusUpdater,
			Reason:  p.StatusReason,
		}
	}
	return v
}

// Resolve looks up a single suggestion by identifier text, e.g.
// GET /v1/suggestions/main/42b.
func (h Suggestions) Resolve(c *gin.Context) {
	ns := suggestion.Namespace(c.Param("namespace"))
	if !ns.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"err": "unknown namespace"})
		return
	}

	rec, err := h.svc.ResolveText(c.Request.Context(), c.Param("identifier"), ns)
	switch {
	case errors.Is(err, suggestion.ErrInvalidIdentifier):
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid identifier"})
		return
	case errors.Is(err, suggestion.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"err": "suggestion not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.view(c, rec, c.GetString("sub") != ""))
}

// ListByAuthor returns a user's suggestions, newest first. Secured, so
// anonymous records are included.
func (h Suggestions) ListByAuthor(c *gin.Context) {
	ns := suggestion.Namespace(c.Param("namespace"))
	if !ns.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"err": "unknown namespace"})
		return
	}
	author := c.Query("author")
	if author == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "author is required"})
		return
	}

	recs, err := h.svc.ListByAuthor(c.Request.Context(), ns, author, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	views := make([]suggestionView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, h.view(c, rec, true))
	}
	c.JSON(http.StatusOK, gin.H{"items": views})
}
