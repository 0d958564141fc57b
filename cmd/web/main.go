package main

import "recruitdesk_backend/internal/app"

func main() {
	app.Run()
}
