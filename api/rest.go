package api

import (
	"context"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dkasparas/autonuoma/config"
	"github.com/dkasparas/autonuoma/database"
	"github.com/dkasparas/autonuoma/logger"
	"github.com/dkasparas/autonuoma/worker"
	"github.com/gin-gonic/gin"
)

// Jsonerror is the error envelope of the JSON API.
type Jsonerror struct {
	Error string `json:"error"`
}

// Jsondata wraps list and detail responses.
type Jsondata struct {
	Data  any `json:"data"`
	Total int `json:"total,omitempty"`
}

func (s *Server) addRESTRoutes(routerapi *gin.RouterGroup) {
	routerapi.GET("/cars", listOf(s.cars))
	routerapi.GET("/cars/:id", getOf(database.GetCarByID))
	routerapi.POST("/cars", s.apiCarCreate)
	routerapi.PUT("/cars/:id", s.apiCarUpdate)
	routerapi.DELETE("/cars/:id", s.deleteFrom("cars"))

	routerapi.GET("/clients", listOf(s.clients))
	routerapi.GET("/clients/:id", getOf(database.GetClientByID))
	routerapi.POST("/clients", s.apiClientCreate)
	routerapi.PUT("/clients/:id", s.apiClientUpdate)
	routerapi.DELETE("/clients/:id", s.deleteFrom("clients"))

	routerapi.GET("/employees", listOf(s.employees))
	routerapi.GET("/employees/:id", getOf(database.GetEmployeeByID))
	routerapi.POST("/employees", s.apiEmployeeCreate)
	routerapi.PUT("/employees/:id", s.apiEmployeeUpdate)
	routerapi.DELETE("/employees/:id", s.deleteFrom("employees"))

	routerapi.GET("/orders", listOf(s.orders))
	routerapi.GET("/orders/:id", getOf(database.GetOrderByID))
	routerapi.POST("/orders", s.apiOrderCreate)
	routerapi.PUT("/orders/:id", s.apiOrderUpdate)
	routerapi.DELETE("/orders/:id", s.deleteFrom("orders"))

	routerapi.GET("/reservations", listOf(s.reservations))
	routerapi.GET("/reservations/:id", getOf(database.GetReservationByID))
	routerapi.POST("/reservations", s.apiReservationCreate)
	routerapi.PUT("/reservations/:id", s.apiReservationUpdate)
	routerapi.DELETE("/reservations/:id", s.deleteFrom("reservations"))

	routerapi.GET("/invoices", listOf(s.invoices))
	routerapi.GET("/invoices/:id", getOf(database.GetInvoiceByID))
	routerapi.POST("/invoices", s.apiInvoiceCreate)
	routerapi.PUT("/invoices/:id", s.apiInvoiceUpdate)
	routerapi.DELETE("/invoices/:id", s.deleteFrom("invoices"))

	routerapi.GET("/tickets", listOf(s.tickets))
	routerapi.GET("/tickets/:id", getOf(database.GetTicketByID))
	routerapi.POST("/tickets", s.apiTicketCreate)
	routerapi.PUT("/tickets/:id", s.apiTicketUpdate)
	routerapi.DELETE("/tickets/:id", s.deleteFrom("support_tickets"))
}

func (s *Server) addGeneralRoutes(routerapi *gin.RouterGroup) {
	routerapi.GET("/table/:table/data", s.adminTableJSON)
	routerapi.GET("/queue", apiQueueList)
	routerapi.GET("/scheduler/list", apiSchedulerList)
	routerapi.GET("/db/backup", apiDBBackup)
	routerapi.DELETE("/db/clearcache", s.apiClearCache)
	routerapi.GET("/slug", s.apiRefreshSlugs)
}

func idParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, Jsonerror{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func listOf[T any](load func() []T) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		items := load()
		ctx.JSON(http.StatusOK, Jsondata{Data: items, Total: len(items)})
	}
}

func getOf[T any](get func(id uint) (T, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := idParam(ctx)
		if !ok {
			return
		}
		item, err := get(id)
		if err != nil {
			ctx.JSON(http.StatusNotFound, Jsonerror{Error: "not found"})
			return
		}
		ctx.JSON(http.StatusOK, Jsondata{Data: item})
	}
}

func (s *Server) deleteFrom(table string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := idParam(ctx)
		if !ok {
			return
		}
		if err := database.DeleteByID(table, id); err != nil {
			ctx.JSON(http.StatusInternalServerError, Jsonerror{Error: err.Error()})
			return
		}
		s.Cache.Invalidate(table)
		ctx.JSON(http.StatusOK, gin.H{"data": "deleted"})
	}
}

// create binds the request body, runs insert and invalidates tag. The
// bound entity is returned with its new id.
func create[T any](ctx *gin.Context, s *Server, tag string, insert func(*T) (int64, error)) (T, bool) {
	var entity T
	if err := ctx.ShouldBindJSON(&entity); err != nil {
		ctx.JSON(http.StatusBadRequest, Jsonerror{Error: err.Error()})
		return entity, false
	}
	id, err := insert(&entity)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, Jsonerror{Error: err.Error()})
		return entity, false
	}
	s.Cache.Invalidate(tag)
	ctx.JSON(http.StatusCreated, gin.H{"data": entity, "id": id})
	return entity, true
}

func update[T any](ctx *gin.Context, s *Server, tag string, setID func(*T, uint), save func(*T) error) bool {
	id, ok := idParam(ctx)
	if !ok {
		return false
	}
	var entity T
	if err := ctx.ShouldBindJSON(&entity); err != nil {
		ctx.JSON(http.StatusBadRequest, Jsonerror{Error: err.Error()})
		return false
	}
	setID(&entity, id)
	if err := save(&entity); err != nil {
		ctx.JSON(http.StatusInternalServerError, Jsonerror{Error: err.Error()})
		return false
	}
	s.Cache.Invalidate(tag)
	ctx.JSON(http.StatusOK, Jsondata{Data: entity})
	return true
}

// @Summary      Create car
// @Tags         cars
// @Param        apikey query string true "apikey"
// @Success      201 {object} Jsondata
// @Failure      401 {object} Jsonerror
// @Router       /api/cars [post]
func (s *Server) apiCarCreate(ctx *gin.Context) {
	create(ctx, s, "cars", database.InsertCar)
}

func (s *Server) apiCarUpdate(ctx *gin.Context) {
	update(ctx, s, "cars", func(c *database.Car, id uint) { c.ID = id }, database.UpdateCar)
}

func (s *Server) apiClientCreate(ctx *gin.Context) {
	create(ctx, s, "clients", database.InsertClient)
}

func (s *Server) apiClientUpdate(ctx *gin.Context) {
	update(ctx, s, "clients", func(c *database.Client, id uint) { c.ID = id }, database.UpdateClient)
}

func (s *Server) apiEmployeeCreate(ctx *gin.Context) {
	create(ctx, s, "employees", database.InsertEmployee)
}

func (s *Server) apiEmployeeUpdate(ctx *gin.Context) {
	update(ctx, s, "employees", func(e *database.Employee, id uint) { e.ID = id }, database.UpdateEmployee)
}

func (s *Server) apiOrderCreate(ctx *gin.Context) {
	// An order flips its car's busena, so both collections go stale.
	if _, ok := create(ctx, s, "orders", database.InsertOrder); ok {
		s.Cache.Invalidate("cars")
	}
}

func (s *Server) apiOrderUpdate(ctx *gin.Context) {
	if update(ctx, s, "orders", func(o *database.Order, id uint) { o.ID = id }, database.UpdateOrder) {
		s.Cache.Invalidate("cars")
	}
}

func (s *Server) apiReservationCreate(ctx *gin.Context) {
	create(ctx, s, "reservations", database.InsertReservation)
}

func (s *Server) apiReservationUpdate(ctx *gin.Context) {
	update(ctx, s, "reservations", func(r *database.Reservation, id uint) { r.ID = id }, database.UpdateReservation)
}

func (s *Server) apiInvoiceCreate(ctx *gin.Context) {
	create(ctx, s, "invoices", database.InsertInvoice)
}

func (s *Server) apiInvoiceUpdate(ctx *gin.Context) {
	update(ctx, s, "invoices", func(i *database.Invoice, id uint) { i.ID = id }, database.UpdateInvoice)
}

// apiTicketCreate stores the ticket and pushes the on-call alert from
// the notify queue so the request does not wait on Pushover.
func (s *Server) apiTicketCreate(ctx *gin.Context) {
	ticket, ok := create(ctx, s, "support_tickets", database.InsertTicket)
	if !ok {
		return
	}
	if err := s.dispatchTicketAlert(ticket); err != nil {
		logger.Logtype("error").Err(err).Msg("queue ticket notification")
	}
}

// dispatchTicketAlert queues the on-call notification for a fresh ticket.
// Both the JSON create and the admin create form go through here.
func (s *Server) dispatchTicketAlert(ticket database.SupportTicket) error {
	return worker.Dispatch("ticket notification", func(jobctx context.Context) error {
		return s.Notify.NotifyTicket(jobctx, &ticket)
	}, worker.QueueNotify)
}

func (s *Server) apiTicketUpdate(ctx *gin.Context) {
	update(ctx, s, "support_tickets", func(t *database.SupportTicket, id uint) { t.ID = id }, database.UpdateTicket)
}

// @Summary      Queue
// @Description  Lists queued and running jobs
// @Tags         general
// @Param        apikey query string true "apikey"
// @Success      200 {object} Jsondata
// @Failure      401 {object} Jsonerror
// @Router       /api/queue [get]
func apiQueueList(ctx *gin.Context) {
	jobs := worker.GetQueue()
	ctx.JSON(http.StatusOK, Jsondata{Data: jobs, Total: len(jobs)})
}

// @Summary      Scheduler
// @Description  Lists registered schedules
// @Tags         general
// @Param        apikey query string true "apikey"
// @Success      200 {object} Jsondata
// @Failure      401 {object} Jsonerror
// @Router       /api/scheduler/list [get]
func apiSchedulerList(ctx *gin.Context) {
	schedules := worker.GetSchedules()
	ctx.JSON(http.StatusOK, Jsondata{Data: schedules, Total: len(schedules)})
}

// @Summary      Backup database
// @Tags         general
// @Param        apikey query string true "apikey"
// @Success      200 {object} string
// @Failure      401 {object} Jsonerror
// @Router       /api/db/backup [get]
func apiDBBackup(ctx *gin.Context) {
	general := config.GetSettingsGeneral()
	target := filepath.Join(filepath.Dir(general.DBFile),
		"autonuoma.db."+time.Now().Format("20060102_150405"))
	if err := database.Backup(target, 10); err != nil {
		ctx.JSON(http.StatusInternalServerError, Jsonerror{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, "ok")
}

// @Summary      Clear cache
// @Tags         general
// @Param        apikey query string true "apikey"
// @Success      200 {object} string
// @Failure      401 {object} Jsonerror
// @Router       /api/db/clearcache [delete]
func (s *Server) apiClearCache(ctx *gin.Context) {
	s.Cache.Invalidate(database.TableNames()...)
	ctx.JSON(http.StatusOK, "ok")
}

// apiRefreshSlugs regenerates the url slug of every car.
func (s *Server) apiRefreshSlugs(ctx *gin.Context) {
	cars := database.GetCars()
	for idx := range cars {
		slug := database.CarSlug(&cars[idx])
		if slug == cars[idx].Slug {
			continue
		}
		if _, err := database.ExecN("update cars set slug = ? where id = ?", slug, cars[idx].ID); err != nil {
			ctx.JSON(http.StatusInternalServerError, Jsonerror{Error: err.Error()})
			return
		}
	}
	s.Cache.Invalidate("cars")
	ctx.JSON(http.StatusOK, "ok")
}
