package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, tasks *TaskHandler, rows *RowHandler, styles *StyleHandler, config *ConfigHandler) {
	v1 := server.Group("/api/v1")

	v1.POST("/tasks", tasks.CreateTask)
	v1.GET("/tasks", tasks.ListTasks)
	v1.GET("/tasks/:id", tasks.GetTask)
	v1.DELETE("/tasks/:id", tasks.DeleteTask)
	v1.POST("/tasks/:id/enrichment", tasks.StartEnrichment)
	v1.POST("/tasks/:id/enrichment/retry", tasks.RetryEnrichment)
	v1.POST("/tasks/:id/transmit", tasks.TransmitTask)

	v1.GET("/tasks/:id/rows", rows.GetRows)
	v1.PATCH("/tasks/:id/rows/:rowID", rows.UpdateField)
	v1.POST("/tasks/:id/rows/:rowID/confirm", rows.ConfirmRow)
	v1.POST("/tasks/:id/selection/toggle", rows.ToggleSelection)
	v1.POST("/tasks/:id/selection/page", rows.SelectAllOnPage)
	v1.POST("/tasks/:id/selection/confirm", rows.ConfirmSelected)

	v1.GET("/config/fields", config.GetFieldConfig)
	v1.PUT("/config/fields", config.UpdateFieldConfig)

	v1.POST("/styles/generate", styles.GenerateStyles)
}
