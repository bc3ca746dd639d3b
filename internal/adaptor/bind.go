package adaptor

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
)

// formBinder is implemented by request DTOs that can be filled from a
// form-encoded body.
type formBinder interface {
	FromForm(form url.Values)
}

const maxBodyBytes = 1 << 20

// bind decodes a JSON body when the request says so and falls back to
// form values otherwise.
func bind(w http.ResponseWriter, r *http.Request, dst formBinder) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return json.NewDecoder(r.Body).Decode(dst)
	}

	if err := r.ParseForm(); err != nil {
		return err
	}
	dst.FromForm(r.PostForm)
	return nil
}
