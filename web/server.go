package web

import (
	"log"
	"net/http"
	"os"
	"path"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/bindec_tools/bindec"
	"github.com/mogaika/bindec_tools/config"
	"github.com/mogaika/bindec_tools/scene"
)

// actions are serialized, every handler holds sceneLock while it
// touches ServerScene
var (
	ServerSettings *config.Settings
	ServerFormats  bindec.Formats
	ServerScene    *scene.Scene
	sceneLock      sync.Mutex
)

// Setup resets scene and installs settings used by actions
func Setup(settings *config.Settings, formats bindec.Formats) {
	sceneLock.Lock()
	defer sceneLock.Unlock()

	ServerSettings = settings
	ServerFormats = formats
	if ServerFormats == nil {
		ServerFormats = bindec.Formats{}
	}
	ServerScene = scene.New()
}

func NewRouter(webPath string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/action/bindec/import", HandlerActionImportBindec).Methods("POST")
	r.HandleFunc("/action/bindec/export", HandlerActionExportBindec).Methods("GET", "POST")
	r.HandleFunc("/action/rig", HandlerActionRig).Methods("POST")
	r.HandleFunc("/action/skeleton/capsules", HandlerActionSkeletonCapsules).Methods("POST")
	r.HandleFunc("/action/scene/reset", HandlerActionSceneReset).Methods("POST")
	r.HandleFunc("/action/scene/{format}", HandlerActionExportScene).Methods("GET")
	r.HandleFunc("/json/scene", HandlerAjaxScene).Methods("GET")
	r.HandleFunc("/ws/status", HandlerStatusWs)

	if webPath != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))
	}
	return r
}

func StartServer(addr string, settings *config.Settings, formats bindec.Formats, webPath string) error {
	Setup(settings, formats)

	r := NewRouter(webPath)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
