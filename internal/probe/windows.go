package probe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/frkavka/browser-info/internal/domain"
)

// foregroundWindowScript resolves the foreground window handle, its
// owning process and its rectangle, emitting one line in the shared
// probe format.
const foregroundWindowScript = `
[Console]::OutputEncoding = [System.Text.Encoding]::UTF8
Add-Type -TypeDefinition @"
    using System;
    using System.Text;
    using System.Runtime.InteropServices;
    public class ForegroundWindow {
        [StructLayout(LayoutKind.Sequential)]
        public struct RECT { public int Left; public int Top; public int Right; public int Bottom; }
        [DllImport("user32.dll")] public static extern IntPtr GetForegroundWindow();
        [DllImport("user32.dll")] public static extern int GetWindowText(IntPtr hWnd, StringBuilder text, int count);
        [DllImport("user32.dll")] public static extern uint GetWindowThreadProcessId(IntPtr hWnd, out uint pid);
        [DllImport("user32.dll")] public static extern bool GetWindowRect(IntPtr hWnd, out RECT rect);
    }
"@

$hwnd = [ForegroundWindow]::GetForegroundWindow()
if ($hwnd -eq [IntPtr]::Zero) {
    Write-Output "|0||0|0|0|0"
    exit 0
}

$title = New-Object System.Text.StringBuilder 1024
[ForegroundWindow]::GetWindowText($hwnd, $title, $title.Capacity) | Out-Null

$procId = 0
[ForegroundWindow]::GetWindowThreadProcessId($hwnd, [ref]$procId) | Out-Null

$rect = New-Object ForegroundWindow+RECT
[ForegroundWindow]::GetWindowRect($hwnd, [ref]$rect) | Out-Null

$name = ""
try { $name = (Get-Process -Id $procId -ErrorAction Stop).ProcessName } catch {}

$w = $rect.Right - $rect.Left
$h = $rect.Bottom - $rect.Top
Write-Output "$name|$procId|$($title.ToString())|$($rect.Left)|$($rect.Top)|$w|$h"
`

type windowsProbe struct {
	runner  commandRunner
	timeout time.Duration
	logger  *zap.Logger
}

func (p *windowsProbe) ActiveWindow(ctx context.Context) (*domain.WindowSnapshot, error) {
	ctx, cancel := probeContext(ctx, p.timeout)
	defer cancel()

	out, err := p.runner.Output(ctx, "powershell",
		"-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", foregroundWindowScript)
	if err != nil {
		return nil, domain.Wrap(domain.KindWindowNotFound, "querying foreground window", err)
	}

	snapshot, err := parseSnapshotLine(lastNonEmptyLine(string(out)))
	if err != nil {
		return nil, err
	}
	if snapshot.ProcessID == 0 && snapshot.AppName == "" {
		return nil, domain.E(domain.KindWindowNotFound, "no foreground window")
	}
	enrichFromProcess(snapshot, p.logger)
	return snapshot, nil
}
