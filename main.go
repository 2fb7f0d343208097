package main

import "warrantyportal/internal/app"

// @title        Warranty Portal API
// @version      1.0
// @description  Customer-facing warranty registration, status checks and password reset.
// @BasePath     /
func main() {
	app.Run()
}
