package database

import (
	"context"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/repository"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/store"
	"go.uber.org/zap"
)

// table binds one SQL table to the generic read-all / insert-one / delete-by-id operations.
// Nil get/remove mean the operation is not offered for that table.
type table struct {
	list   func(ctx context.Context) (interface{}, error)
	create func(c *gin.Context) (string, error)
	get    func(ctx context.Context, id string) (interface{}, error)
	remove func(ctx context.Context, id string) (bool, error)
}

func listOf[T any](fn func(context.Context) ([]T, error)) func(context.Context) (interface{}, error) {
	return func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	}
}

func createOf[T any](idOf func(*T) string, fn func(context.Context, *T) error) func(*gin.Context) (string, error) {
	return func(c *gin.Context) (string, error) {
		var row T
		if err := c.ShouldBindJSON(&row); err != nil {
			return "", errBadRequest{err}
		}
		if err := fn(c.Request.Context(), &row); err != nil {
			return "", err
		}
		return idOf(&row), nil
	}
}

type errBadRequest struct{ error }

var tables = map[string]table{
	store.TableInvoices: {
		list:   listOf(repository.ListInvoices),
		create: createOf(func(r *model.Invoice) string { return r.ID }, repository.CreateInvoice),
	},
	store.TableGuests: {
		list:   listOf(repository.ListGuests),
		create: createOf(func(r *model.Guest) string { return r.ID }, repository.CreateGuest),
	},
	store.TableRooms: {
		list:   listOf(repository.ListRooms),
		create: createOf(func(r *model.Room) string { return r.ID }, repository.CreateRoom),
	},
	store.TableReservations: {
		list:   listOf(repository.ListReservations),
		create: createOf(func(r *model.Reservation) string { return r.ID }, repository.CreateReservation),
	},
	store.TableTasks: {
		list:   listOf(repository.ListTasks),
		create: createOf(func(r *model.Task) string { return r.ID }, repository.CreateTask),
	},
	store.TableRevenue: {
		list:   listOf(repository.ListRevenue),
		create: createOf(func(r *model.RevenueEntry) string { return r.ID }, repository.CreateRevenue),
	},
	store.TableReports: {
		list:   listOf(repository.ListReports),
		create: createOf(func(r *model.ReportRow) string { return r.ID }, repository.CreateReport),
		get: func(ctx context.Context, id string) (interface{}, error) {
			row, err := repository.GetReportByID(ctx, id)
			if err != nil || row == nil {
				return nil, err
			}
			return row, nil
		},
		remove: repository.DeleteReport,
	},
}

// SetupDatabaseRoutes configures the table service routes
func SetupDatabaseRoutes(r *gin.Engine) {
	v1 := r.Group("/api")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			if err := repository.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unavailable",
					"service": "database-service",
					"detail":  err.Error(),
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"service": "database-service",
			})
		})

		v1.GET("/tables/:table", listRows)
		v1.POST("/tables/:table", createRow)
		v1.GET("/tables/:table/:id", getRow)
		v1.DELETE("/tables/:table/:id", deleteRow)
		v1.PATCH("/tables/tasks/:id/status", updateTaskStatus)
	}
}

func lookup(c *gin.Context) (table, bool) {
	t, ok := tables[c.Param("table")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Unknown table: " + c.Param("table")})
	}
	return t, ok
}

// listRows returns every row of a table. Rows come back newest first;
// desc=false reverses that order.
func listRows(c *gin.Context) {
	t, ok := lookup(c)
	if !ok {
		return
	}
	if order := c.DefaultQuery("order", "created_at"); order != "created_at" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Only created_at ordering is supported"})
		return
	}

	rows, err := t.list(c.Request.Context())
	if err != nil {
		zap.L().Error("Failed to list table",
			zap.String("table", c.Param("table")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if c.Query("desc") == "false" {
		reverse(rows)
	}
	c.JSON(http.StatusOK, rows)
}

func createRow(c *gin.Context) {
	t, ok := lookup(c)
	if !ok {
		return
	}

	id, err := t.create(c)
	if err != nil {
		if bad, ok := err.(errBadRequest); ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": bad.Error()})
			return
		}
		zap.L().Error("Failed to insert row",
			zap.String("table", c.Param("table")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func getRow(c *gin.Context) {
	t, ok := lookup(c)
	if !ok {
		return
	}
	if t.get == nil {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Lookup by id is not supported for this table"})
		return
	}

	row, err := t.get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Row not found"})
		return
	}
	c.JSON(http.StatusOK, row)
}

func deleteRow(c *gin.Context) {
	t, ok := lookup(c)
	if !ok {
		return
	}
	if t.remove == nil {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Delete is not supported for this table"})
		return
	}

	deleted, err := t.remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Row not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Row deleted successfully"})
}

var taskStatuses = map[string]bool{
	model.TaskPending:    true,
	model.TaskInProgress: true,
	model.TaskCompleted:  true,
}

// updateTaskStatus moves a housekeeping task between Pending, In Progress and Completed.
func updateTaskStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if !taskStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid task status: " + req.Status})
		return
	}

	updated, err := repository.UpdateTaskStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		zap.L().Error("Failed to update task status",
			zap.String("task_id", c.Param("id")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task status updated"})
}

func reverse(rows interface{}) {
	v := reflect.ValueOf(rows)
	if v.Kind() != reflect.Slice {
		return
	}
	swap := reflect.Swapper(rows)
	for i, j := 0, v.Len()-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}
