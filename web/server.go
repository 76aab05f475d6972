package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vehicle-dashboard/config"
	"vehicle-dashboard/models"
	"vehicle-dashboard/services"
	"vehicle-dashboard/storage"
	"vehicle-dashboard/utils"
)

const sessionCookie = "session_id"

// Server is the HTTP presentation layer: the six dashboard pages, the chart
// image endpoints, a JSON API mirroring the query engine, and the dataset
// upload flow.
type Server struct {
	cfg    *config.Config
	logger *utils.Logger
	store  *storage.Store
	engine *gin.Engine
}

// NewServer wires the routes and templates. The store is shared: page
// renders only ever read from it.
func NewServer(cfg *config.Config, logger *utils.Logger, store *storage.Store) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(mustTemplates())
	engine.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20

	s := &Server{cfg: cfg, logger: logger, store: store, engine: engine}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/page/home")
	})
	s.engine.GET("/page/:page", s.handlePage)
	s.engine.POST("/upload", s.handleUpload)
	s.engine.POST("/reset", s.handleReset)
	s.engine.GET("/health", s.handleHealth)

	charts := s.engine.Group("/charts")
	{
		charts.GET("/top-brands.png", s.handleTopBrandsChart)
		charts.GET("/transmission-type.png", s.handleTransmissionTypeChart)
		charts.GET("/manufacturer-drive.png", s.handleManufacturerDriveChart)
	}

	api := s.engine.Group("/api")
	{
		api.GET("/metrics", s.handleMetricsAPI)
		api.GET("/manufacturers", s.handleManufacturersAPI)
		api.GET("/models", s.handleModelsAPI)
		api.GET("/top-brands", s.handleTopBrandsAPI)
		api.GET("/heatmap", s.handleHeatmapAPI)
	}
}

// Run starts the HTTP server and blocks.
func (s *Server) Run() error {
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Handler exposes the underlying router, used by the tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// sessionID returns the visitor's session cookie value, or "" when absent.
// A session is only created when the visitor uploads a dataset.
func sessionID(c *gin.Context) string {
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return id
}

func (s *Server) resolveDataset(c *gin.Context) (*models.Dataset, storage.SourceInfo) {
	return s.store.Resolve(sessionID(c))
}

func (s *Server) handlePage(c *gin.Context) {
	page, err := ParsePage(c.Param("page"))
	if err != nil {
		c.Redirect(http.StatusFound, "/page/home")
		return
	}

	ds, info := s.resolveDataset(c)
	in := viewInput{
		ds:           ds,
		manufacturer: c.Query("manufacturer"),
		search:       c.Query("q"),
	}

	data := pageData{
		Title:     page.Header(),
		Active:    page.Slug(),
		Nav:       s.navLinks(page),
		Source:    info.Note,
		HasUpload: s.store.HasSession(sessionID(c)),
		View:      viewBuilders[page](in),
	}
	if info.Err != nil {
		data.LoadError = info.Err.Error()
	}
	if c.Query("uploaded") == "1" {
		data.Flash = msgUploadSuccess
	}

	s.logger.Debug("[web] Rendering %q for dataset of %d rows", page.Slug(), ds.Len())
	c.HTML(http.StatusOK, page.template(), data)
}

func (s *Server) navLinks(active Page) []navLink {
	links := make([]navLink, 0, len(pages))
	for _, p := range pages {
		links = append(links, navLink{
			Label:  p.String(),
			Href:   "/page/" + p.Slug(),
			Active: p == active,
		})
	}
	return links
}

// handleUpload replaces the dataset for this session only. The default
// dataset singleton is never touched; a parse failure stores the empty
// dataset plus the error so the banner mirrors a default-load failure.
func (s *Server) handleUpload(c *gin.Context) {
	id := sessionID(c)
	if id == "" {
		id = uuid.NewString()
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	}

	file, err := c.FormFile("dataset")
	if err != nil {
		s.logger.Warn("[web] Upload without a file: %v", err)
		c.Redirect(http.StatusSeeOther, "/page/home")
		return
	}

	if file.Size > int64(s.cfg.MaxUploadMB)<<20 {
		s.store.PutSession(id, file.Filename, models.EmptyDataset(),
			fmt.Errorf("upload exceeds the %d MB limit", s.cfg.MaxUploadMB))
		c.Redirect(http.StatusSeeOther, "/page/home")
		return
	}

	f, err := file.Open()
	if err != nil {
		s.store.PutSession(id, file.Filename, models.EmptyDataset(),
			fmt.Errorf("open upload: %w", err))
		c.Redirect(http.StatusSeeOther, "/page/home")
		return
	}
	defer f.Close()

	ds, parseErr := storage.ParseCSV(f)
	s.store.PutSession(id, file.Filename, ds, parseErr)
	if parseErr != nil {
		s.logger.Warn("[web] Upload %q failed to parse: %v", file.Filename, parseErr)
		c.Redirect(http.StatusSeeOther, "/page/home")
		return
	}

	s.logger.Info("[web] Upload %q: %d listings", file.Filename, ds.Len())
	c.Redirect(http.StatusSeeOther, "/page/home?uploaded=1")
}

func (s *Server) handleReset(c *gin.Context) {
	if id := sessionID(c); id != "" {
		s.store.ClearSession(id)
	}
	c.Redirect(http.StatusSeeOther, "/page/home")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleTopBrandsChart(c *gin.Context) {
	ds, _ := s.resolveDataset(c)
	freq := services.TopManufacturers(ds, services.DefaultTopBrands)
	if len(freq) == 0 {
		c.Status(http.StatusNotFound)
		return
	}

	png, err := renderTopBrandsPie(freq)
	if err != nil {
		s.logger.Error("[web] Pie render failed: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) handleTransmissionTypeChart(c *gin.Context) {
	ds, _ := s.resolveDataset(c)
	s.serveBars(c, "Transmission vs Type", services.TransmissionByType(ds))
}

func (s *Server) handleManufacturerDriveChart(c *gin.Context) {
	ds, _ := s.resolveDataset(c)
	s.serveBars(c, "Manufacturer vs Drive", services.DriveByManufacturer(ds))
}

func (s *Server) serveBars(c *gin.Context, title string, pairs []models.CategoryPair) {
	if len(pairs) == 0 {
		c.Status(http.StatusNotFound)
		return
	}

	png, err := renderGroupedBars(title, buildMatrix(pairs))
	if err != nil {
		s.logger.Error("[web] Bar render failed: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) handleMetricsAPI(c *gin.Context) {
	ds, _ := s.resolveDataset(c)
	c.JSON(http.StatusOK, services.SummaryMetrics(ds))
}

func (s *Server) handleManufacturersAPI(c *gin.Context) {
	ds, _ := s.resolveDataset(c)
	c.JSON(http.StatusOK, services.Manufacturers(ds))
}

func (s *Server) handleModelsAPI(c *gin.Context) {
	ds, _ := s.resolveDataset(c)
	c.JSON(http.StatusOK, services.ModelsForManufacturer(ds, c.Query("manufacturer"), c.Query("q")))
}

func (s *Server) handleTopBrandsAPI(c *gin.Context) {
	ds, _ := s.resolveDataset(c)
	c.JSON(http.StatusOK, services.TopManufacturers(ds, services.DefaultTopBrands))
}

func (s *Server) handleHeatmapAPI(c *gin.Context) {
	ds, _ := s.resolveDataset(c)
	heat, ok := services.BrandHeatPoints(ds, c.Query("manufacturer"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data available for this manufacturer"})
		return
	}
	c.JSON(http.StatusOK, heat)
}
