package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerInfoRegistered(t *testing.T) {
	if SwaggerInfo == nil {
		t.Fatal("swagger info not initialized")
	}
	if SwaggerInfo.Title != "Coin Concierge API" {
		t.Fatalf("unexpected swagger title %q", SwaggerInfo.Title)
	}
	if SwaggerInfo.InstanceName() != "swagger" {
		t.Fatalf("unexpected instance name %q", SwaggerInfo.InstanceName())
	}
}

func TestAdvisorResponsesDocumented(t *testing.T) {
	spec, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("render swagger doc: %v", err)
	}

	var doc struct {
		Paths map[string]map[string]struct {
			Responses map[string]any `json:"responses"`
		} `json:"paths"`
	}
	if err := json.Unmarshal([]byte(spec), &doc); err != nil {
		t.Fatalf("parse swagger template: %v", err)
	}

	post, ok := doc.Paths["/api/advisor/ask"]["post"]
	if !ok {
		t.Fatal("advisor ask path missing from swagger doc")
	}
	for _, code := range []string{"200", "400", "401", "502", "503"} {
		if _, ok := post.Responses[code]; !ok {
			t.Fatalf("advisor ask missing documented response %s", code)
		}
	}
}
