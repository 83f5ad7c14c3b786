// @title           CreatorHub API
// @version         1.0
// @description     API платформы креаторов и их поддержки (документация Swagger).
// @host            localhost:8000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "creatorhub_backend/internal/app"

func main() {
	app.Run()
}
