package dashboard

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	httperr "github.com/aevon-lab/autosales/internal/core/errors"
	"github.com/aevon-lab/autosales/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"google.golang.org/protobuf/types/known/structpb"
)

//go:embed web/index.html
var indexHTML []byte

// RegisterRoutes registers the dashboard page and API on the given router.
func (c *Controller) RegisterRoutes(r gin.IRouter) {
	r.GET("/", c.HandleIndex)
	r.GET("/v1/dashboard", c.HandleOptions)
	r.GET("/v1/dashboard/year-selector", c.HandleYearSelector)
	r.GET("/v1/dashboard/layout", c.HandleLayout)
}

// HandleIndex serves the single-page shell that drives both selectors.
func (c *Controller) HandleIndex(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// HandleOptions handles GET /v1/dashboard
func (c *Controller) HandleOptions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.Options())
}

// HandleYearSelector handles GET /v1/dashboard/year-selector
// Query parameters: statistic
func (c *Controller) HandleYearSelector(ctx *gin.Context) {
	stat := ParseStatisticType(ctx.Query("statistic"))
	ctx.JSON(http.StatusOK, c.YearSelector(stat))
}

// HandleLayout handles GET /v1/dashboard/layout
// Query parameters: statistic, year
func (c *Controller) HandleLayout(ctx *gin.Context) {
	var query struct {
		Statistic string `form:"statistic"`
		Year      int    `form:"year"`
	}
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	sel := Selection{Statistic: ParseStatisticType(query.Statistic), Year: query.Year}
	layout, err := c.Render(sel)
	if err != nil {
		server.Logger(ctx).Error("Failed to render dashboard", "statistic", sel.Statistic, "year", sel.Year, "error", err)
		ctx.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to render dashboard",
			Details:   err.Error(),
		})
		return
	}

	server.Logger(ctx).Debug("Rendered dashboard",
		"statistic", layout.Statistic,
		"year", layout.Year,
		"charts", layout.ChartCount())

	if ctx.NegotiateFormat(binding.MIMEJSON, binding.MIMEPROTOBUF) == binding.MIMEPROTOBUF {
		msg, err := layout.Proto()
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to encode dashboard",
				Details:   err.Error(),
			})
			return
		}
		ctx.ProtoBuf(http.StatusOK, msg)
		return
	}
	ctx.JSON(http.StatusOK, layout)
}

// Proto encodes the layout as a google.protobuf.Struct with the same shape
// as its JSON form.
func (l Layout) Proto() (*structpb.Struct, error) {
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return structpb.NewStruct(fields)
}
