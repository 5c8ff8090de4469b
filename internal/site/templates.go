package site

// shellTemplate is the Go html/template for the page shell. Navigation and
// sections are mounted into the containers after it is executed.
const shellTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="generator" content="landingkit {{.Version}}">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <nav class="nav-container">
    <div class="container"></div>
  </nav>
  <main id="app"></main>
  <script src="script.js"></script>
</body>
</html>`

// liveReloadSnippet is injected before </body> by the preview server.
const liveReloadSnippet = `<script>
(function() {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/livereload");
  ws.onmessage = function(e) { if (e.data === "reload") { location.reload(); } };
})();
</script>
`
