package handler

import (
	"html/template"
	"strings"
)

var pageTmpl = template.Must(template.New("welcome").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: 'Arial', sans-serif;
            margin: 0;
            padding: 0;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            display: flex;
            align-items: center;
            justify-content: center;
        }
        .container {
            background: white;
            padding: 2rem;
            border-radius: 10px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.2);
            text-align: center;
            max-width: 600px;
            width: 90%;
        }
        h1 {
            color: #333;
            margin-bottom: 1rem;
        }
        .welcome-message {
            color: #666;
            font-size: 1.1rem;
            margin-bottom: 1.5rem;
        }
        .user-info, .claims-info {
            background: #f8f9fa;
            padding: 1rem;
            border-radius: 5px;
            margin: 1rem 0;
            text-align: left;
        }
        .status {
            color: #28a745;
            font-weight: bold;
        }
        .footer {
            margin-top: 2rem;
            color: #999;
            font-size: 0.9rem;
        }
        pre {
            white-space: pre-wrap;
            word-wrap: break-word;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>🎉 {{.Title}}</h1>
        <div class="welcome-message">
            <p>Congratulations! Your App Engine application is running successfully.</p>
            <p class="status">✅ Azure AD Integration: Ready for Configuration</p>
        </div>

        <div class="user-info">
            <h3>User Information</h3>
            {{- with .Claims}}{{if .Authenticated}}
            <p><strong>Email:</strong> {{.Email}}</p>
            <p><strong>Name:</strong> {{or .Name "Not provided"}}</p>
            <p><strong>Groups:</strong> {{if .Groups}}{{join .Groups ", "}}{{else}}No groups assigned{{end}}</p>
            {{- else}}
            <p>No user information available (IAP not configured yet)</p>
            {{- end}}{{end}}
        </div>

        <div class="claims-info">
            <h3>IAP JWT Claims</h3>
            {{- if .ClaimsJSON}}
            <pre>{{.ClaimsJSON}}</pre>
            {{- with .Claims.Header}}
            <p><small>Token header (unverified): alg {{.Algorithm}}{{with .KeyID}}, kid {{.}}{{end}}</small></p>
            {{- end}}
            {{- else}}
            <p>No IAP JWT claims available</p>
            {{- end}}
        </div>

        <div class="footer">
            <p>Powered by Google App Engine + Identity-Aware Proxy</p>
            <p>Ready for Azure AD integration</p>
        </div>
    </div>
</body>
</html>
`))
