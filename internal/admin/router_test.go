package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAtoiOrZeroParsesValidInt(t *testing.T) {
	if got := atoiOrZero("42"); got != 42 {
		t.Fatalf("atoiOrZero(\"42\") = %d, want 42", got)
	}
}

func TestAtoiOrZeroDefaultsOnGarbage(t *testing.T) {
	if got := atoiOrZero("not-a-number"); got != 0 {
		t.Fatalf("atoiOrZero(garbage) = %d, want 0", got)
	}
}

func TestAtoiOrZeroDefaultsOnEmpty(t *testing.T) {
	if got := atoiOrZero(""); got != 0 {
		t.Fatalf("atoiOrZero(\"\") = %d, want 0", got)
	}
}

func ginContextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?"+query, nil)
	return c
}

func TestPaginationParamsAppliesDefaultsAndCeiling(t *testing.T) {
	c := ginContextWithQuery("")
	offset, limit, err := paginationParams(c)
	if err != nil {
		t.Fatalf("paginationParams: %v", err)
	}
	if offset != 0 || limit != 100 {
		t.Fatalf("offset=%d limit=%d, want 0,100", offset, limit)
	}
}

func TestPaginationParamsParsesExplicitValues(t *testing.T) {
	c := ginContextWithQuery("offset=5&limit=10")
	offset, limit, err := paginationParams(c)
	if err != nil {
		t.Fatalf("paginationParams: %v", err)
	}
	if offset != 5 || limit != 10 {
		t.Fatalf("offset=%d limit=%d, want 5,10", offset, limit)
	}
}

func TestParsePIDRejectsZero(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "pid", Value: "0"}}
	if _, err := parsePID(c); err == nil {
		t.Fatalf("expected an error for pid 0")
	}
}

func TestParsePIDAcceptsValidValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "pid", Value: "777"}}
	pid, err := parsePID(c)
	if err != nil {
		t.Fatalf("parsePID: %v", err)
	}
	if pid != 777 {
		t.Fatalf("pid = %d, want 777", pid)
	}
}
