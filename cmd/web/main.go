package main

import "github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/app"

func main() {
	app.Run()
}
