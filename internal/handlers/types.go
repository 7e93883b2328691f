package handlers

// CreateLinkRequest is the form-encoded request for creating a short URL.
// Fields: url (required), sponsor (optional).
type CreateLinkRequest struct {
	RawBody []byte `contentType:"application/x-www-form-urlencoded" doc:"Form fields: url (required), sponsor (optional)"`
}

// CreateLinkResponse is the response for a successfully created short URL.
type CreateLinkResponse struct {
	Location string `doc:"The public short URL" header:"Location"`
	Body     struct {
		URL        string         `doc:"The public short URL"                    example:"http://localhost:8888/tiny-abc123" json:"url"`
		Properties map[string]any `doc:"Link properties, always includes 'safe'" json:"properties"`
	}
}

// RedirectRequest is the request for following a short URL.
type RedirectRequest struct {
	ID string `doc:"The short URL identifier" example:"abc123" path:"id"`
}

// RedirectResponse carries the link's stored redirect status and target.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The target URL" header:"Location"`
}

// InfoRequest is the request for short URL usage metadata.
type InfoRequest struct {
	ID string `doc:"The short URL identifier" example:"abc123" path:"id"`
}

// InfoResponse reports usage metadata for a short URL.
type InfoResponse struct {
	Body struct {
		NumClicks    int64  `doc:"Number of recorded clicks"  example:"42"                        json:"numClicks"`
		CreationDate string `doc:"Creation timestamp"         example:"2026-01-02T15:04:05Z"      json:"creationDate"`
		TargetURI    string `doc:"The original URL"           example:"https://example.com/path"  json:"uriDestino"`
	}
}
