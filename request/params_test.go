package request

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/gaborage/go-appkit/logger"
)

func newTestContext(t *testing.T, target string, form url.Values) echo.Context {
	t.Helper()

	e := echo.New()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(http.MethodGet, target, nil)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func testParams(t *testing.T, target string, form url.Values) Params {
	return From(newTestContext(t, target, form), logger.New("disabled", false))
}

func TestQueryTrimsAndDefaults(t *testing.T) {
	p := testParams(t, "/?name=%20alice%20&empty=%20%20", nil)

	assert.Equal(t, "alice", p.Query("name", "nobody"))
	assert.Equal(t, "nobody", p.Query("empty", "nobody"))
	assert.Equal(t, "nobody", p.Query("missing", "nobody"))
}

func TestPathParam(t *testing.T) {
	c := newTestContext(t, "/users/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	p := From(c, logger.New("disabled", false))

	assert.Equal(t, "42", p.Path("id", ""))
	assert.Equal(t, "d", p.Path("other", "d"))
}

func TestFormParam(t *testing.T) {
	p := testParams(t, "/submit", url.Values{"city": {"  Geneva "}})

	assert.Equal(t, "Geneva", p.Form("city", ""))
	assert.Equal(t, "x", p.Form("missing", "x"))
}

func TestLookupPrecedence(t *testing.T) {
	c := newTestContext(t, "/?id=2", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	p := From(c, logger.New("disabled", false))

	v, ok := p.Lookup("id")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = p.Lookup("absent")
	assert.False(t, ok)
}

func TestIntFallsBackOnGarbage(t *testing.T) {
	p := testParams(t, "/?n=12&bad=twelve", nil)

	assert.Equal(t, 12, p.Int("n", 0))
	assert.Equal(t, 7, p.Int("bad", 7))
	assert.Equal(t, 7, p.Int("missing", 7))
}

func TestInt64(t *testing.T) {
	p := testParams(t, "/?n=9000000000", nil)

	assert.Equal(t, int64(9000000000), p.Int64("n", 0))
	assert.Equal(t, int64(-1), p.Int64("missing", -1))
}

func TestBool(t *testing.T) {
	p := testParams(t, "/?a=true&b=0&c=maybe", nil)

	assert.True(t, p.Bool("a", false))
	assert.False(t, p.Bool("b", true))
	assert.True(t, p.Bool("c", true))
	assert.False(t, p.Bool("missing", false))
}
