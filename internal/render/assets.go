package render

// Asset names written next to every page and served by the server.
const (
	StylesheetName = "persona.css"
	ScriptName     = "persona.js"
)

// Stylesheet is the minimal stylesheet shared by all page shells.
const Stylesheet = `:root { --bg: #ffffff; --fg: #212529; --muted: #6c757d; --card: #f8f9fa; --border: #dee2e6; --accent: #228be6; }
[data-theme="dark"], [data-bs-theme="dark"] { --bg: #16181c; --fg: #e9ecef; --muted: #adb5bd; --card: #1f2329; --border: #343a40; --accent: #4dabf7; }
body { margin: 0; background: var(--bg); color: var(--fg); font-family: system-ui, sans-serif; line-height: 1.5; }
a { color: var(--accent); }
.container { max-width: 960px; margin: 0 auto; padding: 0 16px; }
.muted { color: var(--muted); }
.site-header, .navbar { display: flex; justify-content: space-between; align-items: center; gap: 16px; padding: 16px; flex-wrap: wrap; }
.header-controls { display: flex; gap: 8px; align-items: center; }
.tabs { display: flex; gap: 8px; flex-wrap: wrap; margin: 16px 0; }
.tab { padding: 6px 12px; border: 1px solid var(--border); border-radius: 6px; text-decoration: none; }
.tab.active, .quick-link.active { background: var(--accent); color: var(--bg); }
.quick-links { display: grid; grid-template-columns: repeat(auto-fill, minmax(160px, 1fr)); gap: 8px; margin: 16px 0; }
.quick-link { display: flex; flex-direction: column; padding: 12px; border: 1px solid var(--border); border-radius: 8px; text-decoration: none; }
.card, .persona-card { background: var(--card); border: 1px solid var(--border); border-radius: 10px; padding: 16px; margin-bottom: 16px; }
.kv-row { display: grid; grid-template-columns: 34% 1fr; gap: 12px; padding: 6px 0; border-bottom: 1px solid var(--border); }
.kv-key { font-weight: 600; }
.timeline-item { border-left: 2px solid var(--border); padding-left: 12px; margin-bottom: 12px; }
.row { display: flex; flex-wrap: wrap; gap: 12px; }
.avatar { width: 56px; height: 56px; border-radius: 50%; object-fit: cover; }
.badge { display: inline-block; padding: 2px 8px; border-radius: 999px; background: var(--border); }
.img-fluid { max-width: 100%; height: auto; }
`

// Script wires the theme toggle, the profile dropdown, the copy-link action
// and, when enabled, live reload. With a theme endpoint the preference is
// stored by the server; otherwise it lives in localStorage.
const Script = `(function () {
  var root = document.documentElement;
  var variant = root.getAttribute("data-theme-variant") || "two-state";
  var attr = variant === "three-state" ? "data-bs-theme" : "data-theme";
  var key = root.getAttribute("data-theme-key") || "theme";
  var btn = document.getElementById("theme-toggle") || document.getElementById("personaThemeBtn");

  function prefersDark() {
    return !!(window.matchMedia && window.matchMedia("(prefers-color-scheme: dark)").matches);
  }

  function apply(mode) {
    root.setAttribute("data-theme-mode", mode);
    if (btn && btn.form && btn.form.elements.current) btn.form.elements.current.value = mode;
    root.setAttribute(attr, mode === "system" ? (prefersDark() ? "dark" : "light") : mode);
    if (!btn) return;
    if (variant === "three-state") {
      btn.textContent = "Theme: " + mode.charAt(0).toUpperCase() + mode.slice(1);
    } else {
      var next = mode === "dark" ? "Light" : "Dark";
      btn.textContent = next;
      btn.setAttribute("aria-label", "Switch to " + next + " mode");
    }
  }

  function next(mode) {
    if (variant === "three-state") {
      return mode === "system" ? "light" : (mode === "light" ? "dark" : "system");
    }
    return mode === "dark" ? "light" : "dark";
  }

  var serverBacked = !!(btn && btn.form);
  if (!serverBacked) {
    var stored = localStorage.getItem(key);
    if (variant === "three-state") apply(stored === "light" || stored === "dark" || stored === "system" ? stored : "system");
    else apply(stored === "light" || stored === "dark" ? stored : (prefersDark() ? "dark" : "light"));
  } else if (variant !== "three-state" && !root.hasAttribute("data-theme-stored")) {
    apply(prefersDark() ? "dark" : "light");
  }

  if (btn) {
    btn.addEventListener("click", function (e) {
      if (serverBacked) {
        e.preventDefault();
        fetch(btn.form.action, {
          method: "POST",
          headers: { "Accept": "application/json" },
          body: new URLSearchParams({ current: root.getAttribute("data-theme-mode") || "" }),
          credentials: "same-origin"
        })
          .then(function (r) { return r.ok ? r.json() : Promise.reject(r.status); })
          .then(function (state) { apply(state.mode); })
          .catch(function () { btn.form.submit(); });
        return;
      }
      var cur = variant === "three-state" ? (localStorage.getItem(key) || "system") : (root.getAttribute("data-theme-mode") || "light");
      var n = next(cur);
      localStorage.setItem(key, n);
      apply(n);
    });
  }

  if (window.matchMedia) {
    window.matchMedia("(prefers-color-scheme: dark)").addEventListener("change", function () {
      if (root.getAttribute("data-theme-mode") === "system") apply("system");
    });
  }

  var select = document.getElementById("profile-select");
  if (select) {
    select.addEventListener("change", function () {
      var opt = select.options[select.selectedIndex];
      window.location.href = opt.getAttribute("data-href") || "./";
    });
  }

  var share = document.getElementById("share-link");
  if (share) {
    share.addEventListener("click", function (e) {
      e.preventDefault();
      var href = share.getAttribute("href");
      if (!navigator.clipboard) { window.location.href = href; return; }
      navigator.clipboard.writeText(new URL(href, window.location.href).toString()).then(function () {
        share.textContent = "Copied!";
        setTimeout(function () { share.textContent = "Copy Link"; }, 900);
      }, function () {
        window.location.href = href;
      });
    });
  }

  var reload = root.getAttribute("data-livereload");
  if (reload && window.WebSocket) {
    var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + reload);
    ws.onmessage = function () { location.reload(); };
  }
})();
`
