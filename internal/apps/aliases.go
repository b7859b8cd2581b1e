package apps

var windowsAliases = []Alias{
	{"notepad", "notepad"},
	{"calculator", "calc"},
	{"paint", "mspaint"},
	{"word", "winword"},
	{"excel", "excel"},
	{"powerpoint", "powerpnt"},
	{"outlook", "outlook"},
	{"cmd", "cmd"},
	{"powershell", "powershell"},
	{"task manager", "taskmgr"},
	{"control panel", "control"},
	{"settings", "ms-settings:"},
	{"file explorer", "explorer"},
	{"browser", "start microsoft-edge:"},
	{"edge", "start  microsoft-edge:"},
	{"chrome", "start chrome"},
	{"firefox", "start firefox"},
	{"opera", "start opera"},
	{"brave", "start brave"},
	{"vscode", "code"},
	{"visual studio code", "code"},
	{"terminal", "wt"},
	{"windows terminal", "wt"},
	{"photos", "ms-photos:"},
	{"camera", "start microsoft.windows.camera:"},
	{"store", "ms-windows-store:"},
	{"mail", "start outlookmail:"},
	{"calendar", "outlookcal:"},
	{"maps", "bingmaps:"},
	{"weather", "msnweather:"},
	{"news", "msnnews:"},
	{"sports", "msnsports:"},
	{"money", "msnmoney:"},
	{"music", "mswindowsmusic:"},
	{"movies", "mswindowsvideo:"},
	{"photoshop", "photoshop"},
	{"illustrator", "illustrator"},
	{"premiere", "premiere"},
	{"after effects", "afterfx"},
	{"audition", "audition"},
	{"lightroom", "lightroom"},
	{"bridge", "bridge"},
	{"acrobat", "acrobat"},
	{"reader", "acrord32"},
	{"teams", "teams"},
	{"zoom", "zoom"},
	{"skype", "skype"},
	{"discord", "discord"},
	{"spotify", "spotify"},
	{"vlc", "vlc"},
	{"media player", "wmplayer"},
	{"windows media player", "wmplayer"},
	{"groove music", "mswindowsmusic:"},
	{"movies & tv", "mswindowsvideo:"},
	{"alarms", "ms-clock:"},
	{"clock", "ms-clock:"},
	{"this pc", "explorer"},
	{"my computer", "explorer"},
	{"documents", "explorer shell:DocumentsLibrary"},
	{"downloads", "explorer shell:Downloads"},
	{"pictures", "explorer shell:PicturesLibrary"},
	{"music", "explorer shell:MusicLibrary"},
	{"videos", "explorer shell:VideosLibrary"},
	{"desktop", "explorer shell:Desktop"},
	{"recycle bin", "explorer shell:RecycleBinFolder"},
	{"network", "explorer shell:NetworkPlacesFolder"},
	{"printers", "explorer shell:PrintersFolder"},
	{"fonts", "explorer shell:Fonts"},
	{"start menu", "explorer shell:StartMenu"},
	{"run", "shell:AppsFolder"},
	{"apps", "shell:AppsFolder"},
	{"programs", "shell:ProgramFiles"},
	{"program files", "shell:ProgramFiles"},
	{"program files (x86)", "shell:ProgramFilesX86"},
	{"system32", "explorer shell:System"},
	{"system", "explorer shell:System"},
	{"windows", "explorer shell:Windows"},
	{"users", "explorer shell:UsersFilesFolder"},
	{"user", "explorer shell:UsersFilesFolder"},
	{"public", "explorer shell:CommonDocuments"},
	{"shared", "explorer shell:CommonDocuments"},
	{"temp", "explorer shell:Temp"},
	{"temporary", "explorer shell:Temp"},
	{"recent", "explorer shell:Recent"},
	{"favorites", "explorer shell:Favorites"},
	{"links", "explorer shell:Links"},
	{"search", "explorer shell:SearchHomeFolder"},
	{"home", "explorer shell:HomeFolder"},
	{"personal", "explorer shell:Personal"},
	{"my documents", "explorer shell:Personal"},
	{"my pictures", "explorer shell:My Pictures"},
	{"my music", "explorer shell:My Music"},
	{"my videos", "explorer shell:My Video"},
	{"my computer", "explorer shell:MyComputerFolder"},
	{"computer", "explorer shell:MyComputerFolder"},
}

var linuxAliases = []Alias{
	{"notepad", "gedit"},
	{"text editor", "gedit"},
	{"calculator", "gnome-calculator"},
	{"terminal", "x-terminal-emulator"},
	{"browser", "x-www-browser"},
	{"firefox", "firefox"},
	{"chrome", "google-chrome"},
	{"chromium", "chromium"},
	{"brave", "brave-browser"},
	{"vscode", "code"},
	{"visual studio code", "code"},
	{"settings", "gnome-control-center"},
	{"task manager", "gnome-system-monitor"},
	{"system monitor", "gnome-system-monitor"},
	{"file explorer", "xdg-open ."},
	{"files", "nautilus"},
	{"home", "xdg-open ~"},
	{"documents", "xdg-open ~/Documents"},
	{"downloads", "xdg-open ~/Downloads"},
	{"pictures", "xdg-open ~/Pictures"},
	{"videos", "xdg-open ~/Videos"},
	{"music", "xdg-open ~/Music"},
	{"desktop", "xdg-open ~/Desktop"},
	{"spotify", "spotify"},
	{"discord", "discord"},
	{"vlc", "vlc"},
	{"zoom", "zoom"},
	{"teams", "teams-for-linux"},
	{"thunderbird", "thunderbird"},
	{"mail", "thunderbird"},
	{"gimp", "gimp"},
	{"paint", "gimp"},
}

var darwinAliases = []Alias{
	{"notepad", "open -a TextEdit"},
	{"text editor", "open -a TextEdit"},
	{"calculator", "open -a Calculator"},
	{"terminal", "open -a Terminal"},
	{"browser", "open -a Safari"},
	{"safari", "open -a Safari"},
	{"chrome", `open -a "Google Chrome"`},
	{"firefox", "open -a Firefox"},
	{"vscode", `open -a "Visual Studio Code"`},
	{"visual studio code", `open -a "Visual Studio Code"`},
	{"settings", `open -a "System Settings"`},
	{"task manager", `open -a "Activity Monitor"`},
	{"activity monitor", `open -a "Activity Monitor"`},
	{"file explorer", "open ."},
	{"finder", "open -a Finder"},
	{"home", "open ~"},
	{"documents", "open ~/Documents"},
	{"downloads", "open ~/Downloads"},
	{"pictures", "open ~/Pictures"},
	{"desktop", "open ~/Desktop"},
	{"music", "open -a Music"},
	{"spotify", "open -a Spotify"},
	{"mail", "open -a Mail"},
	{"calendar", "open -a Calendar"},
	{"notes", "open -a Notes"},
	{"maps", "open -a Maps"},
	{"photos", "open -a Photos"},
	{"discord", "open -a Discord"},
	{"zoom", "open -a zoom.us"},
	{"vlc", "open -a VLC"},
}
