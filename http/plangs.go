package http

import (
	"net/http"

	"github.com/programme-lv/contest/httpjson"
	"github.com/programme-lv/contest/logger"
	"github.com/programme-lv/contest/planglist"
)

func (httpserver *HttpServer) listProgrammingLangs(w http.ResponseWriter, r *http.Request) {
	langs, err := planglist.ListProgrLangs()
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	res := make([]ProgrammingLang, len(langs))
	for i, l := range langs {
		res[i] = mapProgrammingLang(l)
	}
	httpjson.WriteSuccessJson(w, res)
}
