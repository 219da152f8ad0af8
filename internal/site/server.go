package site

import (
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
)

// Serve starts a local HTTP file server for an exported site, the way a
// static host would serve it: no page rendering, just files.
func Serve(dir string, port int, open bool) error {
	addr := fmt.Sprintf(":%d", port)
	url := fmt.Sprintf("http://localhost:%d", port)

	if open {
		go openBrowser(url)
	}

	fmt.Printf("Serving exported site from %s at %s\n", dir, url)
	fmt.Println("Press Ctrl+C to stop.")

	return http.ListenAndServe(addr, FileHandler(dir))
}

// FileHandler serves dir with caching disabled so rebuilds show up on reload.
func FileHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		fs.ServeHTTP(w, r)
	})
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
