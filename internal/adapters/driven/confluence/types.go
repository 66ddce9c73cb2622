package confluence

import "github.com/custodia-labs/confrep/internal/core/domain"

// Wire formats for the /rest/api/content endpoints.

const (
	contentTypePage       = "page"
	representationStorage = "storage"
	expandPage            = "body.storage,version,space,ancestors"
	expandLookup          = "version,space"
	contentPath           = "/rest/api/content"
	maxErrorBodyBytes     = 4096
	headerContentType     = "Content-Type"
	headerAccept          = "Accept"
	mediaTypeJSON         = "application/json"
	searchLimit           = "1"
)

type spaceRef struct {
	Key string `json:"key"`
}

type ancestor struct {
	ID string `json:"id"`
}

type storage struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

type body struct {
	Storage storage `json:"storage"`
}

type version struct {
	Number int `json:"number"`
}

// contentRequest is the create and update payload.
type contentRequest struct {
	ID        string     `json:"id,omitempty"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Space     *spaceRef  `json:"space,omitempty"`
	Ancestors []ancestor `json:"ancestors,omitempty"`
	Body      body       `json:"body"`
	Version   *version   `json:"version,omitempty"`
}

// content is a page as returned by the API. Nested objects are only present
// when requested through expand.
type content struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Space     *spaceRef  `json:"space,omitempty"`
	Version   *version   `json:"version,omitempty"`
	Body      *body      `json:"body,omitempty"`
	Ancestors []ancestor `json:"ancestors,omitempty"`
}

// contentList is the paged listing returned by GET /rest/api/content.
type contentList struct {
	Results []content `json:"results"`
	Size    int       `json:"size"`
}

func newStorageBody(value string) body {
	return body{Storage: storage{Value: value, Representation: representationStorage}}
}

func (c *content) toDomain() *domain.RemotePage {
	page := &domain.RemotePage{
		ID:    c.ID,
		Title: c.Title,
	}
	if c.Space != nil {
		page.SpaceKey = c.Space.Key
	}
	if c.Version != nil {
		page.Version = c.Version.Number
	}
	if c.Body != nil {
		page.Body = c.Body.Storage.Value
	}
	if n := len(c.Ancestors); n > 0 {
		page.ParentID = c.Ancestors[n-1].ID
	}
	return page
}
