package logbook

import "weightloss/internal/domain/logbook"

type listInput struct {
	Date string `query:"date" doc:"Only entries of this day (YYYY-MM-DD)"`
}

type listOutput struct {
	Body []logbook.Log
}

type idInput struct {
	ID string `path:"id" doc:"Log id"`
}

type logOutput struct {
	Body logbook.Log
}

type saveInput struct {
	Body logbook.Log
}
