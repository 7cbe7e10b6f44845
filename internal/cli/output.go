// Copyright 2026 The MercadoPago Go SDK Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mercadopago-community/sdk-go/core"
)

// failure is what mpctl prints for an outcome that is not a success.
type failure struct {
	Outcome string          `json:"outcome"`
	Status  int             `json:"status,omitempty"`
	Failure string          `json:"failure,omitempty"`
	Error   string          `json:"error,omitempty"`
	Body    json.RawMessage `json:"body,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeOutcome prints the body of a successful outcome. Anything else is
// printed as a failure document and returned as an error so the process
// exits non-zero.
func writeOutcome(w io.Writer, out core.Outcome) error {
	switch out.Kind {
	case core.KindSuccess:
		return writeBody(w, out.Body)
	case core.KindNoContent:
		return nil
	}

	doc := failure{
		Outcome: out.Kind.String(),
		Status:  out.StatusCode,
		Failure: string(out.Failure),
	}
	if out.Cause != nil {
		doc.Error = out.Cause.Error()
	}
	if json.Valid(out.Body) {
		doc.Body = out.Body
	} else if len(out.Body) > 0 {
		raw, _ := json.Marshal(string(out.Body))
		doc.Body = raw
	}
	if err := writeJSON(w, doc); err != nil {
		return err
	}
	return out.Err()
}

func writeBody(w io.Writer, body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}
